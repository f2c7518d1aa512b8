package gemini

import "os"

// Config はGemini APIクライアントの設定です。
type Config struct {
	APIKey string // Gemini APIキー（必須）
	Model  string // 使用するモデル名（空ならDefaultModel）
}

// LoadConfig は環境変数からGemini設定を読み込みます。
func LoadConfig() Config {
	return Config{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  os.Getenv("GEMINI_MODEL"),
	}
}
