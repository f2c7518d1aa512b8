// Package router はHTTPルーティングを定義します。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	analysishandler "leadfinder/internal/feature/analysis/transport/handler"
	leadshandler "leadfinder/internal/feature/leads/transport/handler"
	pipelinehandler "leadfinder/internal/feature/pipeline/transport/handler"
	researchhandler "leadfinder/internal/feature/research/transport/handler"
	"leadfinder/internal/platform/http/handler"
)

// NewRouter は全エンドポイントを登録したginエンジンを生成します。
// webDirが空でない場合、そのディレクトリのindex.htmlをルートで配信します。
func NewRouter(analysis *analysishandler.AnalysisHandler, research *researchhandler.ResearchHandler,
	leads *leadshandler.LeadsHandler, pipeline *pipelinehandler.PipelineHandler, webDir string) *gin.Engine {
	r := gin.Default()

	// ブラウザUIからの呼び出しを許可
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)

	v1 := r.Group("/v1")
	{
		// 各段階を個別に実行するエンドポイント
		v1.POST("/analyze", analysis.Analyze)
		v1.POST("/research", research.Research)
		v1.POST("/qualify", leads.Qualify)

		// フルパイプライン実行とメール配信
		v1.POST("/leads", pipeline.Run)
		v1.POST("/leads/send", leads.Send)
	}

	// ブラウザUI
	if webDir != "" {
		r.StaticFile("/", webDir+"/index.html")
		r.StaticFile("/index.html", webDir+"/index.html")
	}

	return r
}
