// Package config はアプリケーション設定を読み込みます。
// 優先順位は config.yaml < .env < 環境変数 です。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"outreach_backend/internal/feature/outreach/domain/entity"
	"outreach_backend/internal/feature/outreach/usecase"
	"outreach_backend/internal/platform/logger"
)

// DefaultPath はCONFIG_PATH未設定時に読み込むYAMLファイルです。存在しなくても構いません。
const DefaultPath = "config.yaml"

// Pacing は外部API呼び出しの間隔です。
type Pacing struct {
	Search         time.Duration `yaml:"search"`
	SearchError    time.Duration `yaml:"search_error"`
	Question       time.Duration `yaml:"question"`
	QuestionError  time.Duration `yaml:"question_error"`
	Step           time.Duration `yaml:"step"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// LLM はモデル名とサンプリングパラメータです。APIキーは環境変数からのみ読み込みます。
type LLM struct {
	Model           string  `yaml:"model"`
	EmbeddingModel  string  `yaml:"embedding_model"`
	Temperature     float32 `yaml:"temperature"`
	TopP            float32 `yaml:"top_p"`
	TopK            float32 `yaml:"top_k"`
	MaxOutputTokens int32   `yaml:"max_output_tokens"`
}

// Documents はクラブ資料とテンプレートファイルのパスです。
type Documents struct {
	SponsorshipPacket string `yaml:"sponsorship_packet"`
	DesignPackage     string `yaml:"design_package"`
	Templates         string `yaml:"templates"`
}

// Research は調査パイプラインの件数設定です。
type Research struct {
	ResultsPerQuery int      `yaml:"results_per_query"`
	MaxContacts     int      `yaml:"max_contacts"`
	RetrievalK      int      `yaml:"retrieval_k"`
	ConnectionFocus []string `yaml:"connection_focus"`
	ClubQuestions   []string `yaml:"club_questions"`
}

// Config はアプリケーション全体の設定です。
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log       logger.Config         `yaml:"log"`
	Identity  entity.SenderIdentity `yaml:"identity"`
	Documents Documents             `yaml:"documents"`
	CacheDir  string                `yaml:"cache_dir"`
	// CacheTTL はRedisに載せたアーティファクトの有効期間です。
	CacheTTL  time.Duration `yaml:"cache_ttl"`
	Pacing    Pacing        `yaml:"pacing"`
	LLM       LLM           `yaml:"llm"`
	Research  Research      `yaml:"research"`
	Prospects struct {
		Count int `yaml:"count"`
	} `yaml:"prospects"`
}

// Default は設定ファイルがない場合の既定値を返します。
func Default() *Config {
	s := usecase.DefaultSettings()
	cfg := &Config{
		Log: logger.Config{Level: "info", Format: "text", Output: "stdout"},
		// 所属・導入文・件名は Load で送信者に合わせて補う
		Identity: entity.SenderIdentity{
			Name:  s.Identity.Name,
			Role:  s.Identity.Role,
			Club:  s.Identity.Club,
			Pitch: s.Identity.Pitch,
		},
		Documents: Documents{
			SponsorshipPacket: "docs/sponsorship_packet.pdf",
			DesignPackage:     "docs/fdp.pdf",
			Templates:         "docs/templates.txt",
		},
		CacheDir: "cache",
		CacheTTL: 24 * time.Hour,
		Pacing: Pacing{
			Search:         2 * time.Second,
			SearchError:    5 * time.Second,
			Question:       3 * time.Second,
			QuestionError:  10 * time.Second,
			Step:           2 * time.Second,
			RequestTimeout: 120 * time.Second,
		},
		LLM: LLM{Temperature: s.Sampling.Temperature},
		Research: Research{
			ResultsPerQuery: s.ResultsPerQuery,
			MaxContacts:     s.MaxContacts,
			RetrievalK:      s.RetrievalK,
			ConnectionFocus: s.ConnectionFocus,
			ClubQuestions:   s.ClubQuestions,
		},
	}
	cfg.Server.Port = "8080"
	cfg.Prospects.Count = usecase.DefaultProspectCount
	return cfg
}

// Load は path（空の場合は CONFIG_PATH、さらに空なら DefaultPath）のYAMLを既定値に重ね、
// .env と環境変数で上書きした設定を返します。
// path を明示した場合のみ、ファイルが存在しないことをエラーとします。
func Load(path string) (*Config, error) {
	// .env は既存の環境変数を上書きしない
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	explicit := path != ""
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		slog.Debug("configuration loaded", "path", path)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		slog.Debug("no config file, using defaults", "path", path)
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.Identity = completeIdentity(cfg.Identity)
	return cfg, nil
}

// completeIdentity は未設定の所属・導入文・導入段落・件名を補います。
// 名前・役職・クラブがデフォルトのままならデフォルトの文面を使い、
// そうでなければ設定された送信者から組み立てます。
func completeIdentity(id entity.SenderIdentity) entity.SenderIdentity {
	d := usecase.DefaultSettings().Identity
	if id.Name == d.Name && id.Role == d.Role && id.Club == d.Club {
		if id.Affiliation == "" {
			id.Affiliation = d.Affiliation
		}
		if id.Intro == "" {
			id.Intro = d.Intro
		}
		if id.IntroParagraph == "" {
			id.IntroParagraph = d.IntroParagraph
		}
		if id.DefaultSubject == "" {
			id.DefaultSubject = d.DefaultSubject
		}
		return id
	}

	if id.Intro == "" {
		id.Intro = fmt.Sprintf("My name is %s, and I am the %s for %s", id.Name, id.Role, id.Club)
	}
	if id.IntroParagraph == "" {
		p := id.Intro
		if id.Affiliation != "" {
			p += ", a student team at " + id.Affiliation
		}
		id.IntroParagraph = p + "."
	}
	if id.DefaultSubject == "" {
		id.DefaultSubject = "Partnership with " + id.Club
	}
	return id
}

// applyEnv は環境変数が設定されている項目だけを上書きします。
func (c *Config) applyEnv() {
	setString(&c.Server.Port, "PORT")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Log.Output, "LOG_OUTPUT")
	setString(&c.Log.FilePath, "LOG_FILE")
	setString(&c.CacheDir, "CACHE_DIR")
	setString(&c.Documents.SponsorshipPacket, "SPONSORSHIP_PACKET_PATH")
	setString(&c.Documents.DesignPackage, "DESIGN_PACKAGE_PATH")
	setString(&c.Documents.Templates, "TEMPLATES_PATH")
	setString(&c.LLM.Model, "GEMINI_MODEL")
	setString(&c.LLM.EmbeddingModel, "GEMINI_EMBEDDING_MODEL")
	setString(&c.Identity.Name, "SENDER_NAME")
	setString(&c.Identity.Role, "SENDER_ROLE")

	if v := os.Getenv("PROSPECT_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Prospects.Count = n
		} else {
			slog.Warn("invalid PROSPECT_COUNT, ignoring", "value", v)
		}
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.CacheTTL = d
		} else {
			slog.Warn("invalid CACHE_TTL, ignoring", "value", v)
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Settings はパイプライン用の設定を組み立てます。
func (c *Config) Settings() usecase.Settings {
	return usecase.Settings{
		Identity:        c.Identity,
		ConnectionFocus: c.Research.ConnectionFocus,
		ClubQuestions:   c.Research.ClubQuestions,
		ResultsPerQuery: c.Research.ResultsPerQuery,
		MaxContacts:     c.Research.MaxContacts,
		RetrievalK:      c.Research.RetrievalK,
		Sampling: usecase.Sampling{
			Temperature:     c.LLM.Temperature,
			TopP:            c.LLM.TopP,
			TopK:            c.LLM.TopK,
			MaxOutputTokens: c.LLM.MaxOutputTokens,
		},
	}
}

// Paths はクラブ資料とテンプレートのパスを返します。
func (c *Config) Paths() usecase.DocumentPaths {
	return usecase.DocumentPaths{
		SponsorshipPacket: c.Documents.SponsorshipPacket,
		DesignPackage:     c.Documents.DesignPackage,
		Templates:         c.Documents.Templates,
	}
}

// Addr はサーバーのリッスンアドレスを返します。
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}
