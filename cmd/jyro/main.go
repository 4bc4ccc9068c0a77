// Command jyro runs a Jyro script file against an optional JSON data file,
// printing the resulting Data and any diagnostics. Grounded on the teacher's
// cmd/flowa/main.go flag-based CLI shape, with the teacher's hand-rolled
// loadEnvFile replaced by github.com/joho/godotenv (SPEC_FULL.md §A).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"jyro/internal/version"
	"jyro/pkg/builtins"
	"jyro/pkg/catalog"
	"jyro/pkg/jyro"
	"jyro/pkg/value"
)

func printUsage() {
	fmt.Println("Jyro - an embeddable scripting language for safe data transformation")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  jyro [-data file.json] <script.jyro>   Run a Jyro script")
	fmt.Println("  jyro -help, -h                         Show this help message")
	fmt.Println("  jyro -version, -v                      Show version information")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Printf("jyro version %s\n", version.Version)
	fmt.Printf("build date: %s\n", version.BuildDate)
	fmt.Printf("commit: %s\n", version.GitCommit)
}

func main() {
	_ = godotenv.Load()

	helpFlag := flag.Bool("help", false, "Show help message")
	helpShort := flag.Bool("h", false, "Show help message")
	versionFlag := flag.Bool("version", false, "Show version information")
	versionShort := flag.Bool("v", false, "Show version information")
	dataPath := flag.String("data", "", "Path to a JSON file seeding the Data root")

	flag.Usage = printUsage
	flag.Parse()

	if *helpFlag || *helpShort {
		printUsage()
		os.Exit(0)
	}
	if *versionFlag || *versionShort {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(0)
	}

	runFile(args[0], *dataPath)
}

func runFile(scriptPath, dataPath string) {
	source, err := os.ReadFile(scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading script: %v\n", err)
		os.Exit(1)
	}

	data := value.NewObject()
	if dataPath != "" {
		raw, err := os.ReadFile(dataPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading data file: %v\n", err)
			os.Exit(1)
		}
		var decoded interface{}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			fmt.Fprintf(os.Stderr, "error parsing data file: %v\n", err)
			os.Exit(1)
		}
		data = builtins.FromJSON(decoded)
	}

	reg := catalog.NewRegistry()
	builtins.RegisterAuth(reg)
	builtins.RegisterMail(reg)
	builtins.RegisterWebSocket(reg)
	builtins.RegisterScript(reg)

	result := jyro.Execute(string(source), data, reg, jyro.Options{})

	for _, d := range result.Diagnostics {
		fmt.Fprintln(os.Stderr, d.String())
	}

	out, err := json.MarshalIndent(builtins.ToJSON(result.Data), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error rendering result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if !result.Success {
		os.Exit(1)
	}
}
