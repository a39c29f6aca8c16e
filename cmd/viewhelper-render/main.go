package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-viewhelper/pkg/config"
	"github.com/goliatone/go-viewhelper/pkg/helpers"
	"github.com/goliatone/go-viewhelper/pkg/metrics"
	"github.com/goliatone/go-viewhelper/pkg/render/template/gotemplate"
	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

func main() {
	templatePath := flag.String("template", "", "template file to render")
	dataPath := flag.String("data", "", "JSON or YAML file with template variables")
	configPath := flag.String("config", "", "JSON or YAML configuration file")
	envFile := flag.String("env", ".env", "dotenv file loaded before configuration")
	output := flag.String("output", "", "output file (stdout if empty)")
	list := flag.Bool("list", false, "list registered helpers and exit")
	showMetrics := flag.Bool("metrics", false, "log helper invocation counts after rendering")
	flag.Parse()

	if err := config.LoadEnv(*envFile); err != nil {
		log.Fatalf("Failed to load env: %v", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	promRegistry := prometheus.NewRegistry()
	registry := helpers.NewRegistry(append(cfg.RegistryOptions(os.Stderr),
		viewhelper.WithObserver(metrics.NewObserver(promRegistry)))...)

	if *list {
		for _, name := range registry.List() {
			fmt.Println(name)
		}
		return
	}

	if strings.TrimSpace(*templatePath) == "" {
		log.Fatalf("a -template file is required")
	}
	vars, err := config.LoadData(*dataPath)
	if err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}

	dir, name := filepath.Split(*templatePath)
	if dir == "" {
		dir = cfg.Templates.Dir
	}
	engine, err := gotemplate.New(
		gotemplate.WithBaseDir(dir),
		gotemplate.WithExtension(filepath.Ext(name)),
		gotemplate.WithRegistry(registry),
	)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rendered, err := engine.RenderContext(ctx, name, vars)
	if err != nil {
		logger.Error("render failed", "template", *templatePath, "error", err)
		os.Exit(1)
	}

	if *showMetrics {
		logMetrics(logger, promRegistry)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Template written to %s\n", *output)
	} else {
		fmt.Println(rendered)
	}
}

func logMetrics(logger *slog.Logger, gatherer prometheus.Gatherer) {
	families, err := gatherer.Gather()
	if err != nil {
		logger.Warn("gather metrics", "error", err)
		return
	}
	for _, family := range families {
		if family.GetName() != "viewhelper_renders_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			attrs := []any{"count", metric.GetCounter().GetValue()}
			for _, label := range metric.GetLabel() {
				attrs = append(attrs, label.GetName(), label.GetValue())
			}
			logger.Info("helper renders", attrs...)
		}
	}
}
