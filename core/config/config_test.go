package config_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/huddle/core/config"
)

var knownVars = []string{
	"HUDDLE_ENV", "PORT", "JOB_TIMEOUT", "SNOWFLAKE_NODE_ID",
	"SLACK_BOT_TOKEN", "SLACK_SIGNING_SECRET", "SLACK_APP_TOKEN", "SLACK_API_URL", "SLACK_DEBUG",
	"LLM_PROVIDER", "LLM_API_KEY", "OPENAI_API_KEY", "LLM_BASE_URL", "LLM_MODEL",
	"LLM_TOKENS_PER_MESSAGE", "LLM_TEMPERATURE",
	"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_HEADERS", "OTEL_SERVICE_NAME", "OTEL_SERVICE_VERSION",
}

// withEnv replaces every known variable with env for the current test.
func withEnv(env map[string]string) {
	for _, key := range knownVars {
		prev, had := os.LookupEnv(key)
		DeferCleanup(func() {
			if had {
				os.Setenv(key, prev)
			} else {
				os.Unsetenv(key)
			}
		})
		os.Unsetenv(key)
	}
	env["HUDDLE_ENV"] = valueOr(env["HUDDLE_ENV"], "test")
	for k, v := range env {
		os.Setenv(k, v)
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

var _ = Describe("Load", func() {
	It("applies defaults", func() {
		withEnv(map[string]string{
			"SLACK_BOT_TOKEN":      "xoxb-1",
			"SLACK_SIGNING_SECRET": "secret",
			"LLM_API_KEY":          "sk-1",
		})

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Port).To(Equal("3000"))
		Expect(cfg.JobTimeout).To(Equal(60 * time.Second))
		Expect(cfg.NodeID).To(Equal(int64(1)))
		Expect(cfg.LLM.Provider).To(Equal("openai"))
		Expect(cfg.LLM.TokensPerMessage).To(Equal(150))
		Expect(cfg.LLM.Temperature).To(BeNumerically("~", 0.8))
		Expect(cfg.OTel.ServiceName).To(Equal("huddle"))
		Expect(cfg.OTel.Enabled()).To(BeFalse())
		Expect(cfg.Slack.SocketMode()).To(BeFalse())
	})

	It("reads overrides", func() {
		withEnv(map[string]string{
			"HUDDLE_ENV":             "production",
			"PORT":                   "8080",
			"JOB_TIMEOUT":            "90s",
			"SLACK_BOT_TOKEN":        "xoxb-1",
			"SLACK_APP_TOKEN":        "xapp-1",
			"SLACK_DEBUG":            "true",
			"LLM_PROVIDER":           "anthropic",
			"LLM_API_KEY":            "sk-ant",
			"LLM_TOKENS_PER_MESSAGE": "200",
			"LLM_TEMPERATURE":        "0.2",
		})

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.IsProduction()).To(BeTrue())
		Expect(cfg.Port).To(Equal("8080"))
		Expect(cfg.JobTimeout).To(Equal(90 * time.Second))
		Expect(cfg.Slack.SocketMode()).To(BeTrue())
		Expect(cfg.Slack.Debug).To(BeTrue())
		Expect(cfg.LLM.Provider).To(Equal("anthropic"))
		Expect(cfg.LLM.TokensPerMessage).To(Equal(200))
		Expect(cfg.LLM.Temperature).To(BeNumerically("~", 0.2))
	})

	It("falls back to OPENAI_API_KEY", func() {
		withEnv(map[string]string{
			"SLACK_BOT_TOKEN":      "xoxb-1",
			"SLACK_SIGNING_SECRET": "secret",
			"OPENAI_API_KEY":       "sk-legacy",
		})

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.LLM.APIKey).To(Equal("sk-legacy"))
	})

	DescribeTable("rejects incomplete configuration",
		func(env map[string]string, want string) {
			withEnv(env)
			_, err := config.Load()
			Expect(err).To(MatchError(ContainSubstring(want)))
		},
		Entry("no bot token", map[string]string{"SLACK_SIGNING_SECRET": "s", "LLM_API_KEY": "k"}, "SLACK_BOT_TOKEN"),
		Entry("no signing secret over HTTP", map[string]string{"SLACK_BOT_TOKEN": "b", "LLM_API_KEY": "k"}, "SLACK_SIGNING_SECRET"),
		Entry("no api key", map[string]string{"SLACK_BOT_TOKEN": "b", "SLACK_SIGNING_SECRET": "s"}, "LLM_API_KEY"),
		Entry("unknown provider", map[string]string{"SLACK_BOT_TOKEN": "b", "SLACK_SIGNING_SECRET": "s", "LLM_API_KEY": "k", "LLM_PROVIDER": "bard"}, "LLM_PROVIDER"),
		Entry("zero token budget", map[string]string{"SLACK_BOT_TOKEN": "b", "SLACK_SIGNING_SECRET": "s", "LLM_API_KEY": "k", "LLM_TOKENS_PER_MESSAGE": "0"}, "LLM_TOKENS_PER_MESSAGE"),
	)
})
