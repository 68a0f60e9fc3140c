package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/services"
)

func TestNewView_Hidden(t *testing.T) {
	v := NewView(nil)

	require.NotNil(t, v)
	assert.Equal(t, "", v.View())
	assert.Nil(t, v.Cmds())
}

func TestView_ShowsProgress(t *testing.T) {
	v := NewView(nil)
	o := services.NewProgressOverlay(v)

	o.Show("")
	o.Advance(domain.MilestoneRequest)

	out := v.View()
	assert.Equal(t, 45, v.State().Current)
	assert.Contains(t, out, domain.MilestoneRequest.Message)
	assert.Contains(t, out, "45%")
	assert.Nil(t, v.Cmds(), "nothing is scheduled before hide")
}

func TestView_Hide_SchedulesSettle(t *testing.T) {
	v := NewView(nil)
	o := services.NewProgressOverlay(v)
	o.Show("")

	o.Hide(domain.CompletionSucceeded)

	assert.True(t, v.State().Visible)
	assert.Equal(t, domain.ProgressComplete, v.State().Current)
	assert.Contains(t, v.View(), domain.CompletionSucceeded)
	assert.NotNil(t, v.Cmds())
}

func TestView_Settle_HidesOverlay(t *testing.T) {
	v := NewView(nil)
	o := services.NewProgressOverlay(v)
	lifecycle := o.Show("")
	o.Hide(domain.CompletionFailed)
	assert.Contains(t, v.View(), domain.CompletionFailed)

	o.Settle(lifecycle)

	assert.False(t, v.State().Visible)
	assert.Equal(t, "", v.View())
}

func TestView_SetWidth_Bounds(t *testing.T) {
	v := NewView(nil)

	v.SetWidth(200)
	assert.Equal(t, 60, v.bar.Width)

	v.SetWidth(5)
	assert.Equal(t, 10, v.bar.Width)
}
