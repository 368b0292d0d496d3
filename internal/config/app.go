package config

type AppConfig struct {
	SessionTTL     int64 `yaml:"session-ttl-minutes"`
	MetricsPortNum int   `yaml:"metrics-port"`
}

func (s *AppConfig) SessionTTLMinutes() int64 {
	return s.SessionTTL
}

func (s *AppConfig) MetricsPort() int {
	return s.MetricsPortNum
}
