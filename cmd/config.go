package cmd

type Config struct {
	HTTPPort         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	CourierBaseURL   string
	CourierAPIID     string
	CourierAPIToken  string
	AutoCreateParcel bool
	AdminAPIToken    string
	ViewerAPIToken   string
}
