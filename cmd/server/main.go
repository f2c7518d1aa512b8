package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"leadfinder/internal/app/di"
	"leadfinder/internal/app/router"
	analysishandler "leadfinder/internal/feature/analysis/transport/handler"
	analysisusecase "leadfinder/internal/feature/analysis/usecase"
	leadshandler "leadfinder/internal/feature/leads/transport/handler"
	leadsusecase "leadfinder/internal/feature/leads/usecase"
	pipelinehandler "leadfinder/internal/feature/pipeline/transport/handler"
	pipelineusecase "leadfinder/internal/feature/pipeline/usecase"
	researchhandler "leadfinder/internal/feature/research/transport/handler"
	infraredis "leadfinder/internal/platform/redis"
)

func main() {
	// .envがあれば読み込む（本番では環境変数を直接設定）
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found. Using environment variables.")
	}

	ctx := context.Background()

	// Gemini（必須）
	generator, err := di.NewGenerator(ctx)
	if err != nil {
		log.Fatal("[FATAL] Failed to initialize Gemini client: ", err)
	}

	// Redis（任意）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// SES（任意）
	sender, err := di.NewEmailSender(ctx)
	if err != nil {
		log.Fatal("[FATAL] Failed to initialize SES sender: ", err)
	}

	// Usecase
	analysisUC := analysisusecase.NewAnalysisUsecase(generator)
	finder := di.NewFinder(generator, di.NewScraper(), rdb)
	leadsUC := leadsusecase.NewLeadsUsecase(generator, sender)
	pipelineUC := pipelineusecase.NewPipelineUsecase(analysisUC, finder, leadsUC)

	// Handler
	analysisH := analysishandler.NewAnalysisHandler(analysisUC)
	researchH := researchhandler.NewResearchHandler(finder)
	leadsH := leadshandler.NewLeadsHandler(leadsUC)
	pipelineH := pipelinehandler.NewPipelineHandler(pipelineUC)

	// ルータ生成
	r := router.NewRouter(analysisH, researchH, leadsH, pipelineH, webDir())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// webDir はブラウザUIの配信ディレクトリを返します。
func webDir() string {
	if dir := os.Getenv("WEB_DIR"); dir != "" {
		return dir
	}
	return "web"
}
