// Command recursosctl looks up support resources from the terminal using
// the same table, rules and ranking as the web directory.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose   bool
	csvPath   string
	rulesPath string
	fallback  string
	lazyQuote bool

	// Search flags
	profileID string
	province  string
	locality  string
	dedupe    string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "recursosctl",
	Short: "Consulta el directorio de recursos de apoyo",
	Long: `recursosctl reads the resource table and prints the resources that
match a profile and province, ranked the same way as the web directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.OutputPaths = []string{"stderr"}
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Muestra los recursos para un perfil y una provincia",
	Example: `  recursosctl search --csv recursos.csv --perfil crisis --provincia Granada
  recursosctl search --csv recursos.csv --perfil duelo --provincia Jaén --localidad Úbeda`,
	RunE: runSearch,
}

var provincesCmd = &cobra.Command{
	Use:   "provinces",
	Short: "Lista las provincias presentes en la tabla",
	RunE:  runProvinces,
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Lista los perfiles configurados",
	RunE:  runProfiles,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&csvPath, "csv", "recursos.csv", "Path to the resource table")
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "Rules file (profiles, scopes, crisis tokens); empty uses the built-in rules")
	rootCmd.PersistentFlags().BoolVar(&lazyQuote, "lazy-quotes", true, "Read a bare quote inside an unquoted cell as a literal character")
	rootCmd.PersistentFlags().StringVar(&fallback, "fallback-encoding", "latin-1", "Encoding tried when the table is not valid UTF-8 (latin-1, windows-1252, none)")

	searchCmd.Flags().StringVar(&profileID, "perfil", "", "Profile id (see the profiles command); empty uses the first profile")
	searchCmd.Flags().StringVar(&province, "provincia", "", "Province to search")
	searchCmd.Flags().StringVar(&locality, "localidad", "", "Optional locality or municipality")
	searchCmd.Flags().StringVar(&dedupe, "dedupe", "name", "Duplicate key: name or id")
	_ = searchCmd.MarkFlagRequired("provincia")

	rootCmd.AddCommand(searchCmd, provincesCmd, profilesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
