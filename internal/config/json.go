package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Adapter struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
		RetryCount     int      `json:"retry_count"`
		RetryBackoff   Duration `json:"retry_backoff"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Watcher struct {
		ProbeInterval Duration `json:"probe_interval"`
		ProbeTimeout  Duration `json:"probe_timeout"`
	} `json:"watcher,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Adapter: Adapter{
			BaseURL:        jsonCfg.Adapter.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			RetryCount:     jsonCfg.Adapter.RetryCount,
			RetryBackoff:   time.Duration(jsonCfg.Adapter.RetryBackoff),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Watcher: Watcher{
			ProbeInterval: time.Duration(jsonCfg.Watcher.ProbeInterval),
			ProbeTimeout:  time.Duration(jsonCfg.Watcher.ProbeTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
