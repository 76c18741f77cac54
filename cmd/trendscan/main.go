// trendscan runs one analysis from the command line and prints the result as
// JSON: trend discovery first, then the prediction path fed with the series
// the collector just gathered.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/Tranv-IA/ContenAI/internal/config"
	"github.com/Tranv-IA/ContenAI/internal/engine"
	"github.com/Tranv-IA/ContenAI/internal/logger"
	"github.com/Tranv-IA/ContenAI/internal/model"
	"github.com/Tranv-IA/ContenAI/internal/notify"
	"github.com/Tranv-IA/ContenAI/internal/storage"
)

var (
	flagconf     string
	flagNiche    string
	flagKeywords string
)

func init() {
	flag.StringVar(&flagconf, "conf", "config.yaml", "config path")
	flag.StringVar(&flagNiche, "niche", "", "niche to analyze, eg: -niche 'personal finance'")
	flag.StringVar(&flagKeywords, "keywords", "", "comma-separated keywords (1-7)")
}

func main() {
	flag.Parse()

	if flagNiche == "" || flagKeywords == "" {
		log.Fatal("both -niche and -keywords are required")
	}

	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	keywords := splitKeywords(flagKeywords)
	ctx := context.Background()

	var store *storage.Storage
	if cfg.DB.Host != "" {
		store, err = storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Fatalf("storage init failed: %v", err)
		}
		defer store.Close()
	}

	eng, err := engine.NewFromConfig(ctx, cfg, store)
	if err != nil {
		logger.Log.Fatalf("engine init failed: %v", err)
	}

	trends, err := eng.GetTrendsForNiche(ctx, flagNiche, keywords)
	if err != nil {
		logger.Log.Fatalf("analysis failed: %v", err)
	}

	historical := eng.CollectHistorical(ctx, keywords)
	prediction := eng.PredictTrends(ctx, flagNiche, keywords, historical, trends.RecentArticles)

	out := struct {
		Trends     *model.TrendsResult     `json:"trends"`
		Prediction *model.PredictionResult `json:"prediction"`
	}{trends, prediction}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Log.Fatalf("failed to encode result: %v", err)
	}

	if cfg.Telegram.Enabled {
		client, err := notify.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			logger.Log.Errorf("telegram init failed: %v", err)
			return
		}
		if err := client.SendRunSummary(trends, prediction); err != nil {
			logger.Log.Errorf("telegram delivery failed: %v", err)
		}
	}
}

func splitKeywords(s string) []string {
	var keywords []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
