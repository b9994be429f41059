package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeromicro/go-zero/core/logx"

	clipkg "pulse-api/internal/cli"
	"pulse-api/internal/config"
	"pulse-api/internal/svc"
	"pulse-api/pkg/journal"
	rewriterpkg "pulse-api/pkg/rewriter"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [-f config] <command> [flags]

Commands:
  analyze   run one ETH analysis pass and print the result
  rewrite   rewrite text in a requested style
`, os.Args[0])
	os.Exit(2)
}

func main() {
	configFile := flag.String("f", "etc/pulse.yaml", "the config file")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	cfg := config.MustLoad(*configFile)
	clipkg.LogConfigSummary(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svcCtx := svc.NewServiceContext(*cfg, cfg.MainPath())

	switch args[0] {
	case "analyze":
		runAnalyze(ctx, svcCtx, args[1:])
	case "rewrite":
		runRewrite(ctx, svcCtx, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		usage()
	}
}

func runAnalyze(ctx context.Context, svcCtx *svc.ServiceContext, args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	journalDir := fs.String("journal", "", "directory for JSON run records (disabled when empty)")
	_ = fs.Parse(args)

	if svcCtx.Analyzer == nil {
		logx.Error("no market source configured, nothing to analyze")
		os.Exit(1)
	}

	var writer *journal.Writer
	if *journalDir != "" {
		writer = journal.NewWriter(*journalDir)
	}

	result, err := svcCtx.Analyzer.Analyze(ctx)
	if err != nil {
		logx.Errorf("analysis failed: %v", err)
		writeRun(writer, svcCtx, &journal.RunRecord{Success: false, ErrorMessage: err.Error()})
		os.Exit(1)
	}

	m := result.Metrics
	fmt.Printf("ETH  current=%.2f  1h=%+.2f%%  24h=%+.2f%%  range=[%.2f, %.2f]\n",
		m.CurrentPrice, m.HourlyChange, m.DailyChange, m.Low24h, m.High24h)
	fmt.Println()
	fmt.Println(result.Summary)

	writeRun(writer, svcCtx, &journal.RunRecord{
		Metrics: &m,
		Summary: result.Summary,
		Success: true,
	})
}

func writeRun(writer *journal.Writer, svcCtx *svc.ServiceContext, rec *journal.RunRecord) {
	if writer == nil {
		return
	}
	if svcCtx.MarketConfig != nil {
		rec.Source = svcCtx.MarketConfig.Default
	}
	rec.Model = svcCtx.Config.Analysis.Model
	path, err := writer.WriteRun(rec)
	if err != nil {
		logx.Errorf("write journal: %v", err)
		return
	}
	logx.Infof("journal record written to %s", path)
}

func runRewrite(ctx context.Context, svcCtx *svc.ServiceContext, args []string) {
	fs := flag.NewFlagSet("rewrite", flag.ExitOnError)
	text := fs.String("text", "", "text to rewrite")
	style := fs.String("style", rewriterpkg.DefaultStyle, "rewrite style")
	extra := fs.String("extra", "", "extra instructions appended to the style")
	model := fs.String("model", "", "override the configured model")
	_ = fs.Parse(args)

	if *text == "" {
		fmt.Fprintln(os.Stderr, "rewrite: -text is required")
		os.Exit(2)
	}

	rw := svcCtx.Rewriter
	if *model != "" && svcCtx.Provider != nil {
		override, err := rewriterpkg.New(svcCtx.Provider, *model)
		if err != nil {
			logx.Errorf("build rewriter: %v", err)
			os.Exit(1)
		}
		rw = override
	}
	if rw == nil {
		logx.Error("no LLM configured, rewriting unavailable")
		os.Exit(1)
	}

	out, err := rw.Rewrite(ctx, rewriterpkg.Request{
		Text:              *text,
		Style:             *style,
		ExtraInstructions: *extra,
	})
	if err != nil {
		logx.Errorf("rewrite failed: %v", err)
		os.Exit(1)
	}

	fmt.Println(out)
}
