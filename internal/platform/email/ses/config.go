package ses

import "os"

// Config はSESメール送信の設定を保持します。
type Config struct {
	// Region はSESを利用するAWSリージョンです。
	Region string
	// Sender は送信元メールアドレスです（SESで検証済みである必要があります）。
	Sender string
}

// LoadConfig は環境変数からSES設定を読み込みます。
// RegionとSenderの両方が設定されている場合のみ有効な設定とみなされます。
func LoadConfig() Config {
	return Config{
		Region: os.Getenv("SES_REGION"),
		Sender: os.Getenv("SES_SENDER"),
	}
}

// Enabled はメール送信が構成済みかどうかを返します。
func (c Config) Enabled() bool {
	return c.Region != "" && c.Sender != ""
}
