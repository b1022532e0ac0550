package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	Timezone        string
	OfferTTLSeconds int

	TomTomMatrixEndpoint string
	TomTomAPIKey         string
	OpenWeatherEndpoint  string
	OpenWeatherAPIKey    string
	MetNoEndpoint        string
	RainThresholdMmH     float64
}
