package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/etivest/rebalancer/internal/config"
	"github.com/etivest/rebalancer/internal/logger"
	"github.com/etivest/rebalancer/internal/models"
	"github.com/etivest/rebalancer/internal/services"
)

var calcCmd = &cobra.Command{
	Use:   "calc [FILE]",
	Short: "Rebalance a JSON asset list from FILE or stdin",
	Long: `Read a JSON array of {"name","current_amount","target_percentage"} records
and print the rebalanced list, or the validation error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalc,
}

var calcIndent bool

func init() {
	rootCmd.AddCommand(calcCmd)
	calcCmd.Flags().BoolVar(&calcIndent, "indent", false, "indent the JSON output")
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var inputs []models.AssetInput
	if err := json.NewDecoder(in).Decode(&inputs); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	// stdout carries the result; the error itself is printed by cobra.
	cfg.LogLevel = "error"
	log, err := logger.New(cfg)
	if err != nil {
		log = zap.NewNop()
	}
	defer log.Sync()

	svc := services.NewRebalanceService(services.EngineFromConfig(cfg.Rebalance))
	results, err := svc.Rebalance(logger.WithContext(cmd.Context(), log), inputs)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if calcIndent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(results)
}
