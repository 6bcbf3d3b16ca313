package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"termslens/internal/app"
	"termslens/internal/config"
	"termslens/internal/logging"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	_ = godotenv.Load()
	cmd := os.Args[1]
	cfg, err := config.Load(os.Getenv("TL_CONFIG"))
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch cmd {
	case "analyze":
		analyze(ctx, cfg, os.Args[2:])
	case "fetch":
		fetch(ctx, cfg, os.Args[2:])
	case "doctor":
		doctor(ctx, cfg)
	default:
		usage()
	}
}

type outputFlags struct {
	lang    *string
	asJSON  *bool
	noColor *bool
}

func newFlags(name string) (*flag.FlagSet, outputFlags) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return fs, outputFlags{
		lang:    fs.String("lang", "", "output language (default from config)"),
		asJSON:  fs.Bool("json", false, "print the raw result as JSON"),
		noColor: fs.Bool("no-color", false, "disable coloured output"),
	}
}

func newApp(ctx context.Context, cfg config.Config) *app.App {
	logger, err := logging.New("error", false)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	// the CLI never needs a shared selection store
	cfg.Selection.Backend = "memory"
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("app init error: %v", err)
	}
	return a
}

func analyze(ctx context.Context, cfg config.Config, args []string) {
	fs, out := newFlags("analyze")
	_ = fs.Parse(args)

	var (
		data []byte
		err  error
	)
	if fs.NArg() > 0 {
		data, err = os.ReadFile(fs.Arg(0))
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	a := newApp(ctx, cfg)
	defer a.Close()
	result := a.Tools.Analyze(ctx, string(data), *out.lang, "")
	if *out.asJSON {
		writeJSON(os.Stdout, result)
		return
	}
	printResult(os.Stdout, result, !*out.noColor)
}

func fetch(ctx context.Context, cfg config.Config, args []string) {
	fs, out := newFlags("fetch")
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fmt.Println("Usage: termslens fetch [-lang xx] [-json] <url>")
		os.Exit(2)
	}

	a := newApp(ctx, cfg)
	defer a.Close()
	analysis, err := a.Tools.AnalyzeURL(ctx, fs.Arg(0), *out.lang, "")
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}
	if *out.asJSON {
		writeJSON(os.Stdout, analysis)
		return
	}
	printDetection(os.Stdout, analysis.Page, analysis.Detection, !*out.noColor)
	printResult(os.Stdout, analysis.Result, !*out.noColor)
}

func doctor(ctx context.Context, cfg config.Config) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	a, appErr := app.New(ctx, cfg, nil)
	if a != nil {
		defer a.Close()
	}
	checks := []check{
		{"config", func() error { return config.Validate(cfg) }},
		{"selection:" + cfg.Selection.Backend, func() error {
			if appErr != nil {
				return appErr
			}
			return a.Selection.Ping(ctx)
		}},
		{"llm:" + cfg.LLM.Provider, func() error {
			if appErr != nil {
				return appErr
			}
			if cfg.LLM.Provider != "none" && a.Pipeline.Capability().Name() == "local" {
				return fmt.Errorf("provider %s is missing credentials", cfg.LLM.Provider)
			}
			return nil
		}},
		{"daemon", func() error { return pingHTTP(ctx, fmt.Sprintf("%s/healthz", localHTTPBase(cfg))) }},
	}
	printChecks(os.Stdout, checks)
}

func pingHTTP(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func localHTTPBase(cfg config.Config) string {
	addr := cfg.HTTP.Addr
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr
}

func writeJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func usage() {
	fmt.Println("Usage: termslens <analyze [file]|fetch <url>|doctor>")
}
