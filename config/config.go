package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL             string
	RedisAddress      string
	BearerToken       string
	RazorpayKeyID     string
	RazorpayKeySecret string
	PusherAppID       string
	PusherKey         string
	PusherSecret      string
	PusherCluster     string
	LabParserURL      string
	HealthQuestions   string
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}
