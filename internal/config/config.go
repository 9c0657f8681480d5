package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/riskibarqy/quiniela/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	GatewaySheets = "sheets"
	GatewayXLSX   = "xlsx"
	GatewayMemory = "memory"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level

	GatewayDriver string

	// Sheets credentials are checked when a request reaches the gateway, not here.
	GoogleSheetID               string
	GoogleServiceAccount        string
	SheetsTimeout               time.Duration
	SheetsCircuitEnabled        bool
	SheetsCircuitFailureCount   int
	SheetsCircuitOpenTimeout    time.Duration
	SheetsCircuitHalfOpenMaxReq int

	XLSXPath string

	DefaultSourceSheet string
	InternationalSheet string
	SheetPrefix        string
	SourceRange        string
	SourceCacheTTL     time.Duration
	Timezone           string
	WhatsAppPhone      string

	MetricsEnabled bool

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	BetterStackEnabled         bool
	BetterStackEndpoint        string
	BetterStackToken           string
	BetterStackTimeout         time.Duration
	BetterStackMinLevel        logging.Level
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	gatewayDriver, err := parseGatewayDriver(getEnv("GATEWAY_DRIVER", GatewaySheets))
	if err != nil {
		return Config{}, err
	}

	sheetsTimeout, err := time.ParseDuration(getEnv("SHEETS_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SHEETS_TIMEOUT: %w", err)
	}
	if sheetsTimeout <= 0 {
		return Config{}, fmt.Errorf("SHEETS_TIMEOUT must be > 0")
	}
	sheetsCircuitEnabled, err := strconv.ParseBool(getEnv("SHEETS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SHEETS_CIRCUIT_ENABLED: %w", err)
	}
	sheetsCircuitFailureCount, err := getEnvAsInt("SHEETS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SHEETS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if sheetsCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SHEETS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	sheetsCircuitOpenTimeout, err := time.ParseDuration(getEnv("SHEETS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SHEETS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if sheetsCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SHEETS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	sheetsCircuitHalfOpenMaxReq, err := getEnvAsInt("SHEETS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SHEETS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if sheetsCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("SHEETS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	xlsxPath := strings.TrimSpace(getEnv("XLSX_PATH", ""))
	if gatewayDriver == GatewayXLSX && xlsxPath == "" {
		return Config{}, fmt.Errorf("XLSX_PATH is required when GATEWAY_DRIVER=%s", GatewayXLSX)
	}

	timezone := strings.TrimSpace(getEnv("QUINIELA_TIMEZONE", "America/Mexico_City"))
	if _, err := time.LoadLocation(timezone); err != nil {
		return Config{}, fmt.Errorf("parse QUINIELA_TIMEZONE: %w", err)
	}

	sourceCacheTTL, err := time.ParseDuration(getEnv("QUINIELA_SOURCE_CACHE_TTL", "0s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QUINIELA_SOURCE_CACHE_TTL: %w", err)
	}
	if sourceCacheTTL < 0 {
		return Config{}, fmt.Errorf("QUINIELA_SOURCE_CACHE_TTL must be >= 0")
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                      appEnv,
		ServiceName:                 getEnv("APP_SERVICE_NAME", "quiniela-api"),
		ServiceVersion:              getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                    getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:          splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                 readTimeout,
		WriteTimeout:                writeTimeout,
		LogLevel:                    parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		GatewayDriver:               gatewayDriver,
		GoogleSheetID:               strings.TrimSpace(getEnv("GOOGLE_SHEET_ID", "")),
		GoogleServiceAccount:        strings.TrimSpace(getEnv("GOOGLE_SERVICE_ACCOUNT", "")),
		SheetsTimeout:               sheetsTimeout,
		SheetsCircuitEnabled:        sheetsCircuitEnabled,
		SheetsCircuitFailureCount:   sheetsCircuitFailureCount,
		SheetsCircuitOpenTimeout:    sheetsCircuitOpenTimeout,
		SheetsCircuitHalfOpenMaxReq: sheetsCircuitHalfOpenMaxReq,
		XLSXPath:                    xlsxPath,
		DefaultSourceSheet:          strings.TrimSpace(getEnv("QUINIELA_DEFAULT_SOURCE_SHEET", "Liga MX")),
		InternationalSheet:          strings.TrimSpace(getEnv("QUINIELA_INTERNATIONAL_SHEET", "Ligas internacionales")),
		SheetPrefix:                 getEnv("QUINIELA_SHEET_PREFIX", "J"),
		SourceRange:                 strings.TrimSpace(getEnv("QUINIELA_SOURCE_RANGE", "A1:Z1000")),
		SourceCacheTTL:              sourceCacheTTL,
		Timezone:                    timezone,
		WhatsAppPhone:               strings.TrimSpace(getEnv("WHATSAPP_PHONE", "5575209743")),
		MetricsEnabled:              metricsEnabled,
		PprofEnabled:                pprofEnabled,
		PprofAddr:                   pprofAddr,
		UptraceEnabled:              uptraceEnabled,
		UptraceDSN:                  uptraceDSN,
		UptraceLogsEnabled:          uptraceLogsEnabled,
		BetterStackEnabled:          betterStackEnabled,
		BetterStackEndpoint:         betterStackEndpoint,
		BetterStackToken:            strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:          betterStackTimeout,
		BetterStackMinLevel:         parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error")),
		PyroscopeEnabled:            pyroscopeEnabled,
		PyroscopeServerAddress:      pyroscopeServerAddress,
		PyroscopeAuthToken:          strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:      strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:  strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:         pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

// Location is the parsed QUINIELA_TIMEZONE; Load already validated it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseGatewayDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case GatewaySheets, GatewayXLSX, GatewayMemory:
		return value, nil
	default:
		return "", fmt.Errorf("invalid GATEWAY_DRIVER %q: valid values are %s, %s, %s", v, GatewaySheets, GatewayXLSX, GatewayMemory)
	}
}
