package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fxadmin-service/internal/application"
	"fxadmin-service/internal/bootstrap"
	"fxadmin-service/internal/domain"

	"github.com/spf13/cobra"
)

var (
	importBase    string
	importSymbols []string
)

type importer interface {
	Import(ctx context.Context, base string, symbols []string) ([]domain.RateView, error)
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Fetch the latest provider rates and store them",
	RunE: func(cmd *cobra.Command, args []string) error {
		imp, cleanup, err := bootstrap.InitImporter(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()
		return runImport(cmd.Context(), cmd.OutOrStdout(), imp, importBase, importSymbols)
	},
}

var _ importer = (*application.RateImporter)(nil)

func runImport(ctx context.Context, out io.Writer, imp importer, base string, symbols []string) error {
	base = strings.ToUpper(strings.TrimSpace(base))
	var syms []string
	for _, s := range symbols {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" && s != base {
			syms = append(syms, s)
		}
	}
	if base == "" || len(syms) == 0 {
		return fmt.Errorf("--base and at least one --symbols value are required")
	}

	rates, err := imp.Import(ctx, base, syms)
	for _, r := range rates {
		fmt.Fprintf(out, "stored rate %d: %s %s on %s\n", r.ID, r.Label(), r.Rate, domain.FormatDate(r.EffectiveDate))
	}
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	fmt.Fprintf(out, "imported %d rates for %s\n", len(rates), base)
	return nil
}

func init() {
	importCmd.Flags().StringVar(&importBase, "base", "USD", "Base currency code")
	importCmd.Flags().StringSliceVar(&importSymbols, "symbols", nil, "Target currency codes, comma separated")
}
