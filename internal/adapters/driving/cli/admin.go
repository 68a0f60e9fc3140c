package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/core/domain"
)

var (
	adminSets     []string
	adminText     string
	adminReviewed bool
	adminGenText  bool
	adminAll      bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Review and edit resource records",
	Long: `Commands for the record review editor of the resource-matching service.

Mutating commands (update, save, upsert) send the admin token configured
with "compass settings set admin.token" or COMPASS_ADMIN_TOKEN.

Field values follow the editor conventions: "Unknown" leaves a field
unset, an empty value clears it, and list fields (categories, languages)
are comma separated.`,
}

var adminSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show review progress",
	Args:  cobra.NoArgs,
	RunE:  runAdminSummary,
}

var adminShowCmd = &cobra.Command{
	Use:   "show [position]",
	Short: "Show a record by its 1-based position",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminShow,
}

var adminUpdateCmd = &cobra.Command{
	Use:   "update [position]",
	Short: "Edit and store a record",
	Long: `Loads the record at a 1-based position, applies the given edits and
stores it.

Examples:
  compass admin update 3 --set phone="(555) 010-2000" --reviewed
  compass admin update 3 --set organization_name=Unknown --set email=
  compass admin update 3 --set languages="English, Spanish" --gen-text`,
	Args: cobra.ExactArgs(1),
	RunE: runAdminUpdate,
}

var adminGenTextCmd = &cobra.Command{
	Use:   "gen-text [position]",
	Short: "Print the embedding text built from a record's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminGenText,
}

var adminSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write every record to the service's files",
	Args:  cobra.NoArgs,
	RunE:  runAdminSave,
}

var adminUpsertCmd = &cobra.Command{
	Use:   "upsert",
	Short: "Reindex edited records",
	Long:  `Re-embeds and reindexes records. Only dirty records are sent unless --all is given.`,
	Args:  cobra.NoArgs,
	RunE:  runAdminUpsert,
}

func init() {
	for _, c := range []*cobra.Command{adminUpdateCmd, adminGenTextCmd} {
		c.Flags().StringArrayVar(&adminSets, "set", nil, "field=value edit (repeatable)")
	}
	adminUpdateCmd.Flags().StringVar(&adminText, "text", "", "replace the embedded text")
	adminUpdateCmd.Flags().BoolVar(&adminReviewed, "reviewed", false, "mark the record as reviewed")
	adminUpdateCmd.Flags().BoolVar(&adminGenText, "gen-text", false, "rebuild the embedded text from the fields")
	adminUpdateCmd.MarkFlagsMutuallyExclusive("text", "gen-text")
	adminUpsertCmd.Flags().BoolVar(&adminAll, "all", false, "reindex every record, not only dirty ones")

	adminCmd.AddCommand(adminSummaryCmd)
	adminCmd.AddCommand(adminShowCmd)
	adminCmd.AddCommand(adminUpdateCmd)
	adminCmd.AddCommand(adminGenTextCmd)
	adminCmd.AddCommand(adminSaveCmd)
	adminCmd.AddCommand(adminUpsertCmd)
	rootCmd.AddCommand(adminCmd)
}

func runAdminSummary(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	summary, err := adminService.Summary(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load summary: %w", err)
	}

	cmd.Printf("Records:  %d\n", summary.Total)
	cmd.Printf("Reviewed: %d\n", summary.ReviewedCount)
	cmd.Printf("Dirty:    %d\n", summary.DirtyCount)
	return nil
}

func runAdminShow(cmd *cobra.Command, args []string) error {
	rec, err := loadAdminRecord(cmd, args[0])
	if err != nil {
		return err
	}
	printAdminRecord(cmd, rec)
	return nil
}

func runAdminUpdate(cmd *cobra.Command, args []string) error {
	rec, err := loadAdminRecord(cmd, args[0])
	if err != nil {
		return err
	}

	edit, err := applyAdminEdits(domain.EditFromRecord(*rec), adminSets)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("reviewed") {
		edit.Reviewed = adminReviewed
	}
	switch {
	case adminGenText:
		edit.Text = domain.NewField(adminService.GenerateText(edit))
	case cmd.Flags().Changed("text"):
		edit.Text = domain.ParseEditorField(adminText)
	}

	res, err := adminService.Update(cmd.Context(), edit)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	cmd.Printf("Saved %s. Reviewed %d, dirty %d.\n", res.ID, res.ReviewedCount, res.DirtyCount)
	return nil
}

func runAdminGenText(cmd *cobra.Command, args []string) error {
	rec, err := loadAdminRecord(cmd, args[0])
	if err != nil {
		return err
	}

	edit, err := applyAdminEdits(domain.EditFromRecord(*rec), adminSets)
	if err != nil {
		return err
	}
	cmd.Println(adminService.GenerateText(edit))
	return nil
}

func runAdminSave(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	res, err := adminService.SaveAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}

	cmd.Println("All saved to JSONL.")
	if res.DocsPath != "" {
		cmd.Printf("  Documents: %s\n", res.DocsPath)
	}
	if res.MetaPath != "" {
		cmd.Printf("  Metadata:  %s\n", res.MetaPath)
	}
	return nil
}

func runAdminUpsert(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	scope := "dirty"
	if adminAll {
		scope = "all"
	}
	cmd.PrintErrf("Upserting (%s)… this may take a while.\n", scope)

	res, err := adminService.Upsert(cmd.Context(), !adminAll)
	if err != nil {
		return fmt.Errorf("failed to upsert records: %w", err)
	}

	cmd.Println(res.String())
	return nil
}

func loadAdminRecord(cmd *cobra.Command, arg string) (*domain.AdminRecord, error) {
	if adminService == nil {
		return nil, errors.New("admin service not configured")
	}

	position, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return nil, fmt.Errorf("%w: position must be a number, got %q", domain.ErrInvalidInput, arg)
	}

	rec, err := adminService.Jump(cmd.Context(), position)
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	return rec, nil
}

// applyAdminEdits applies field=value edits in order.
func applyAdminEdits(edit domain.AdminEdit, sets []string) (domain.AdminEdit, error) {
	for _, set := range sets {
		name, value, ok := strings.Cut(set, "=")
		if !ok {
			return edit, fmt.Errorf("%w: expected field=value, got %q", domain.ErrInvalidInput, set)
		}
		key, err := domain.ParseAdminFieldKey(name)
		if err != nil {
			return edit, err
		}
		edit.Fields.SetEditorText(key, value)
	}
	return edit, nil
}

func printAdminRecord(cmd *cobra.Command, rec *domain.AdminRecord) {
	cmd.Printf("Record %s  (id %s)\n", rec.Position(), rec.ID)
	cmd.Printf("Reviewed: %s  Dirty: %s\n", yesNo(rec.Reviewed), yesNo(rec.Dirty))
	cmd.Println()

	for _, key := range domain.AllAdminFields() {
		cmd.Printf("  %-14s %s\n", key.Label()+":", rec.Fields.EditorText(key))
	}

	cmd.Println()
	cmd.Println("Text:")
	cmd.Println(rec.Text.EditorText())
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
