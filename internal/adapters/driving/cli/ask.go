package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/services"
)

var (
	askCity       string
	askCounty     string
	askZip        string
	askLanguage   string
	askFreeOnly   bool
	askTopK       int
	askTopResults int
	askJSON       bool
	askHTML       bool
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask for resources matching a situation",
	Long: `Describes a situation to the resource-matching service and prints the
matched resources grouped by theme, followed by the action plan.

Citations in the action plan are shown as [Resource name].

Examples:
  compass ask "I lost my job and need help paying rent"
  compass ask "food pantry" --city Springfield --free-only
  compass ask "legal aid" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askCity, "city", "", "only resources in this city")
	askCmd.Flags().StringVar(&askCounty, "county", "", "only resources in this county")
	askCmd.Flags().StringVar(&askZip, "zip", "", "only resources in this ZIP code")
	askCmd.Flags().StringVar(&askLanguage, "language", "", "only resources offered in this language")
	askCmd.Flags().BoolVar(&askFreeOnly, "free-only", false, "only free resources")
	askCmd.Flags().IntVar(&askTopK, "top-k", 0, "candidates retrieved per need (0 = configured default)")
	askCmd.Flags().IntVar(&askTopResults, "top-results", 0, "resources shown per theme (0 = configured default)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output results as JSON")
	askCmd.Flags().BoolVar(&askHTML, "html", false, "output the action plan as sanitized HTML")
	askCmd.MarkFlagsMutuallyExclusive("json", "html")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	req := askService.NewRequest(strings.Join(args, " "))
	applyAskFlags(cmd, &req)
	if req.Query == "" {
		return fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}

	session := newSession(overlayFor(cmd.ErrOrStderr()))
	gen := session.Begin()

	resp, err := askService.Ask(cmd.Context(), req, func(stage domain.RequestStage) {
		session.Stage(gen, stage)
	})
	if err != nil {
		out, _ := session.Fail(gen, err)
		cmd.PrintErrln(out.Status)
		return fmt.Errorf("ask failed: %w", err)
	}

	out, err := session.Complete(gen, resp)
	if err != nil {
		return err
	}

	switch {
	case askJSON:
		return outputAskJSON(cmd, req, session, out)
	case askHTML:
		cmd.Println(out.Narrative.Markup)
		return nil
	default:
		outputAskText(cmd, session, out)
		return nil
	}
}

// applyAskFlags overrides request filters with the flags given on the
// command line. Flags left unset keep the configured defaults.
func applyAskFlags(cmd *cobra.Command, req *domain.AskRequest) {
	flags := cmd.Flags()
	setString := func(name, value string, dst **string) {
		if flags.Changed(name) {
			v := strings.TrimSpace(value)
			*dst = &v
		}
	}
	setString("city", askCity, &req.Filters.City)
	setString("county", askCounty, &req.Filters.County)
	setString("zip", askZip, &req.Filters.ZipCode)
	setString("language", askLanguage, &req.Filters.Language)
	if flags.Changed("free-only") {
		free := askFreeOnly
		req.Filters.FreeOnly = &free
	}
	if askTopK > 0 {
		req.TopK = askTopK
	}
	if askTopResults > 0 {
		req.TopResults = askTopResults
	}
}

// newSession builds a result session rendering the overlay to view.
// The carousel has no view of its own; output is printed from its state
// once the query completes.
func newSession(view driven.OverlayView) *services.ResultSession {
	carousel := services.NewCarouselController(nil)
	return services.NewResultSession(
		carousel,
		services.NewCitationResolver(carousel, markupSanitizer),
		services.NewProgressOverlay(view),
	)
}

// overlayFor returns a progress bar view when w is an interactive
// terminal, or nil so the overlay renders nothing.
func overlayFor(w io.Writer) driven.OverlayView {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return &barOverlay{out: w, wait: true}
}

// barOverlay renders the progress overlay as a terminal progress bar.
type barOverlay struct {
	out       io.Writer
	bar       *progressbar.ProgressBar
	lifecycle uint64
	wait      bool
}

// Ensure barOverlay implements the interface.
var _ driven.OverlayView = (*barOverlay)(nil)

func (o *barOverlay) Render(state domain.ProgressState) {
	if !state.Visible {
		if o.bar != nil {
			_ = o.bar.Clear()
			o.bar = nil
		}
		return
	}
	if o.bar == nil || state.Lifecycle != o.lifecycle {
		o.bar = progressbar.NewOptions(domain.ProgressComplete,
			progressbar.OptionSetWriter(o.out),
			progressbar.OptionSetDescription(state.Message),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)
		o.lifecycle = state.Lifecycle
	}
	o.bar.Describe(state.Message)
	_ = o.bar.Set(state.Current)
}

// Settle keeps the completed bar on screen for the delay. The command
// exits right after, so waiting inline is enough.
func (o *barOverlay) Settle(after time.Duration, settle func()) {
	if o.wait {
		time.Sleep(after)
	}
	settle()
}

func outputAskText(cmd *cobra.Command, session *services.ResultSession, out services.Outcome) {
	cmd.Println(out.Status)
	if out.Empty {
		cmd.Println()
		cmd.Println(domain.EmptyResultsText)
		return
	}
	cmd.Println(out.ResultCount)

	state := session.Carousel().State()
	for _, theme := range state.Themes {
		cmd.Println()
		cmd.Printf("== %s (%d) ==\n", theme.Label, theme.Count)
		for i := theme.SlideStart; i < theme.End(); i++ {
			cmd.Println()
			writeCard(cmd, i-theme.SlideStart+1, state.Slides[i].Content)
		}
	}

	if !out.Narrative.Empty() {
		cmd.Println()
		cmd.Println("Action plan")
		cmd.Println("-----------")
		cmd.Println(out.Narrative.PlainText())
	}
}

func writeCard(cmd *cobra.Command, n int, rec domain.ResourceRecord) {
	md := rec.Metadata
	cmd.Printf("  [%d] %s (score %s)\n", n, rec.DisplayName(), rec.ScoreText())
	if md.Organization.IsPresent() {
		cmd.Printf("      %s\n", md.Organization.Value())
	}
	if rec.Summary.IsPresent() {
		cmd.Printf("      %s\n", rec.Summary.Value())
	}
	cmd.Printf("      Address:    %s\n", md.Address())
	cmd.Printf("      %s\n", md.Locality())
	cmd.Printf("      Phone:      %s\n", md.Phone.Display())
	cmd.Printf("      Website:    %s\n", md.Website.Display())
	cmd.Printf("      Email:      %s\n", md.Email.Display())
	cmd.Printf("      Hours:      %s\n", md.Hours.Display())
	cmd.Printf("      Fees:       %s\n", md.Fees.Display())
	cmd.Printf("      Languages:  %s\n", md.Languages.Display())
	cmd.Printf("      Categories: %s\n", md.Categories.Display())
	if id := rec.ID(); id != "" {
		cmd.Printf("      ID:         %s\n", id)
	}
}

type askOutput struct {
	Query      string        `json:"query"`
	Status     string        `json:"status"`
	Summary    string        `json:"summary,omitempty"`
	Themes     []themeOutput `json:"themes"`
	ActionPlan string        `json:"action_plan,omitempty"`
	Citations  []citeOutput  `json:"citations,omitempty"`
}

type themeOutput struct {
	Slug      string       `json:"slug"`
	Label     string       `json:"label"`
	Resources []cardOutput `json:"resources"`
}

type cardOutput struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Organization string   `json:"organization,omitempty"`
	Score        *float64 `json:"score,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	Website      string   `json:"website"`
	Email        string   `json:"email"`
	Hours        string   `json:"hours"`
	Fees         string   `json:"fees"`
	Languages    []string `json:"languages,omitempty"`
	Categories   []string `json:"categories,omitempty"`
}

type citeOutput struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Resolved bool   `json:"resolved"`
}

func outputAskJSON(
	cmd *cobra.Command, req domain.AskRequest, session *services.ResultSession, out services.Outcome,
) error {
	result := askOutput{
		Query:      req.Query,
		Status:     out.Status,
		Summary:    out.ResultCount,
		Themes:     []themeOutput{},
		ActionPlan: out.Narrative.PlainText(),
	}

	state := session.Carousel().State()
	for _, theme := range state.Themes {
		t := themeOutput{Slug: theme.Slug, Label: theme.Label}
		for _, slide := range state.Slides[theme.SlideStart:theme.End()] {
			t.Resources = append(t.Resources, toCardOutput(slide.Content))
		}
		result.Themes = append(result.Themes, t)
	}

	seen := make(map[string]bool)
	for _, seg := range out.Narrative.CitationSegments() {
		if seen[seg.CitationID] {
			continue
		}
		seen[seg.CitationID] = true
		result.Citations = append(result.Citations, citeOutput{
			ID:       seg.CitationID,
			Label:    seg.Label,
			Resolved: seg.Resolved,
		})
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func toCardOutput(rec domain.ResourceRecord) cardOutput {
	md := rec.Metadata
	return cardOutput{
		ID:           rec.ID(),
		Name:         rec.DisplayName(),
		Organization: md.Organization.DisplayOr(""),
		Score:        rec.Score,
		Summary:      rec.Summary.DisplayOr(""),
		Address:      md.Address(),
		Phone:        md.Phone.Display(),
		Website:      md.Website.Display(),
		Email:        md.Email.Display(),
		Hours:        md.Hours.Display(),
		Fees:         md.Fees.Display(),
		Languages:    md.Languages.Values(),
		Categories:   md.Categories.Values(),
	}
}
