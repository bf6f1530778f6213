package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/marquee/pkg/config"
)

func writeConfig(dir, data string) {
	err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0o600)
	Expect(err).NotTo(HaveOccurred())
}

var _ = Describe("Configer config", func() {
	var tmpDir string

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
	})

	Describe("LoadConfig", func() {
		It("returns default config when no config file exists", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).To(Equal(config.NewDefaultConfig()))
		})

		It("loads all config fields", func() {
			writeConfig(tmpDir, `version = 0

[catalog]
provider = "sqlite"
path = "/data/movies.csv"
dsn = "/data/catalog.db"
table = "films"

[api]
listen = ":9091"

[client]
api_target = "http://myhost:9091"

[recommend]
top_n = 3
seed = 42
lazy = true

[log]
json = true
file = "/var/log/marquee.json"
`)

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Catalog).To(Equal(config.CatalogConfig{
				Provider: "sqlite",
				Path:     "/data/movies.csv",
				DSN:      "/data/catalog.db",
				Table:    "films",
			}))
			Expect(cfg.API.Listen).To(Equal(":9091"))
			Expect(cfg.Client.APITarget).To(Equal("http://myhost:9091"))
			Expect(cfg.Recommend.TopN).To(Equal(uint(3)))
			Expect(cfg.Recommend.Seed).To(Equal(uint64(42)))
			Expect(cfg.Recommend.Lazy).To(BeTrue())
			Expect(cfg.Log.JSON).To(BeTrue())
			Expect(cfg.Log.File).To(Equal("/var/log/marquee.json"))
		})

		It("fills unset fields from defaults", func() {
			writeConfig(tmpDir, `[catalog]
path = "imdb.csv"
`)

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())

			defaults := config.NewDefaultConfig()
			Expect(cfg.Catalog.Path).To(Equal("imdb.csv"))
			Expect(cfg.Catalog.Provider).To(Equal(defaults.Catalog.Provider))
			Expect(cfg.API.Listen).To(Equal(defaults.API.Listen))
			Expect(cfg.Recommend.TopN).To(Equal(defaults.Recommend.TopN))
		})

		It("returns an error for malformed TOML", func() {
			writeConfig(tmpDir, "[catalog\npath = ")

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			_, err = c.LoadConfig()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SaveConfig", func() {
		It("writes a file that LoadConfig reads back", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg := config.NewDefaultConfig()
			cfg.Catalog.Path = "/srv/movies.csv"
			cfg.Recommend.Seed = 7
			Expect(c.SaveConfig(cfg)).To(Succeed())

			Expect(filepath.Join(tmpDir, "config.toml")).To(BeAnExistingFile())

			loaded, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(cfg))
		})

		It("rejects a nil config", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.SaveConfig(nil)).To(HaveOccurred())
		})

		It("uses owner-only permissions", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.SaveConfig(config.NewDefaultConfig())).To(Succeed())

			info, err := os.Stat(c.GetTarget())
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))
		})
	})

	Describe("SetConfigValue and GetConfigValue", func() {
		var c *config.Configer

		BeforeEach(func() {
			var err error
			c, err = config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())
		})

		DescribeTable("round trips every key",
			func(key, value string) {
				Expect(c.SetConfigValue(key, value)).To(Succeed())
				got, err := c.GetConfigValue(key)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(value))
			},
			Entry("catalog.provider", "catalog.provider", "postgres"),
			Entry("catalog.path", "catalog.path", "/tmp/movies.csv"),
			Entry("catalog.dsn", "catalog.dsn", "postgres://localhost/marquee"),
			Entry("catalog.table", "catalog.table", "films"),
			Entry("api.listen", "api.listen", ":7000"),
			Entry("client.api_target", "client.api_target", "http://example.com:7000"),
			Entry("recommend.top_n", "recommend.top_n", "10"),
			Entry("recommend.seed", "recommend.seed", "12345"),
			Entry("recommend.lazy", "recommend.lazy", "true"),
			Entry("log.json", "log.json", "true"),
			Entry("log.file", "log.file", "/tmp/marquee.log"),
		)

		It("preserves other keys", func() {
			Expect(c.SetConfigValue("catalog.path", "a.csv")).To(Succeed())
			Expect(c.SetConfigValue("api.listen", ":1234")).To(Succeed())

			got, err := c.GetConfigValue("catalog.path")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal("a.csv"))
		})

		DescribeTable("rejects invalid values",
			func(key, value string) {
				Expect(c.SetConfigValue(key, value)).To(HaveOccurred())
			},
			Entry("unknown provider", "catalog.provider", "mongodb"),
			Entry("non-numeric top_n", "recommend.top_n", "many"),
			Entry("zero top_n", "recommend.top_n", "0"),
			Entry("negative seed", "recommend.seed", "-1"),
			Entry("non-bool lazy", "recommend.lazy", "sometimes"),
			Entry("non-bool json", "log.json", "yes please"),
		)

		It("rejects unknown keys", func() {
			Expect(c.SetConfigValue("proxy.upstream", "x")).To(MatchError(ContainSubstring("unknown config key")))
			_, err := c.GetConfigValue("proxy.upstream")
			Expect(err).To(MatchError(ContainSubstring("unknown config key")))
		})

		It("reports an unset seed as empty", func() {
			got, err := c.GetConfigValue("recommend.seed")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeEmpty())
		})
	})
})

var _ = Describe("ValidConfigKeys", func() {
	It("lists every key in section order", func() {
		keys := config.ValidConfigKeys()
		Expect(keys).To(HaveLen(11))
		Expect(keys[0]).To(Equal("catalog.provider"))
		Expect(keys[len(keys)-1]).To(Equal("log.file"))
		for _, k := range keys {
			Expect(config.IsValidConfigKey(k)).To(BeTrue(), k)
		}
	})

	It("rejects unknown keys", func() {
		Expect(config.IsValidConfigKey("embedding.model")).To(BeFalse())
		Expect(config.IsValidConfigKey("")).To(BeFalse())
	})
})

var _ = Describe("ParseConfigTOML", func() {
	It("parses an empty document", func() {
		cfg, err := config.ParseConfigTOML([]byte(""))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Version).To(Equal(0))
	})

	It("rejects unsupported versions", func() {
		_, err := config.ParseConfigTOML([]byte("version = 99\n"))
		Expect(err).To(MatchError(ContainSubstring("unsupported config version 99")))
	})

	It("rejects unknown catalog providers", func() {
		_, err := config.ParseConfigTOML([]byte("[catalog]\nprovider = \"mongodb\"\n"))
		Expect(err).To(MatchError(ContainSubstring("unsupported catalog provider")))
	})
})

var _ = Describe("NewDefaultConfig", func() {
	It("returns the documented defaults", func() {
		cfg := config.NewDefaultConfig()
		Expect(cfg.Version).To(Equal(config.CurrentV))
		Expect(cfg.Catalog.Provider).To(Equal("csv"))
		Expect(cfg.Catalog.Path).To(Equal("movies.csv"))
		Expect(cfg.Catalog.Table).To(Equal("movies"))
		Expect(cfg.API.Listen).To(Equal(":8090"))
		Expect(cfg.Client.APITarget).To(Equal("http://localhost:8090"))
		Expect(cfg.Recommend.TopN).To(Equal(uint(6)))
		Expect(cfg.Recommend.Seed).To(BeZero())
		Expect(cfg.Recommend.Lazy).To(BeFalse())
	})

	It("returns a fresh value each call", func() {
		a := config.NewDefaultConfig()
		a.Catalog.Path = "changed.csv"
		Expect(config.NewDefaultConfig().Catalog.Path).To(Equal("movies.csv"))
	})
})
