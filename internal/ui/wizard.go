package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/config"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/credentials"
)

func providerEnvVar(provider string) string {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	case "deepseek":
		return "DEEPSEEK_API_KEY"
	}
	return ""
}

func defaultModel(provider string) string {
	switch provider {
	case "anthropic":
		return "claude-haiku-4-5"
	case "openai":
		return "gpt-5-mini"
	case "gemini":
		return "gemini-3-flash-preview"
	case "deepseek":
		return "deepseek-chat"
	}
	return ""
}

func wizardSay(tty *os.File, ttyErr error, format string, args ...any) {
	if ttyErr == nil {
		fmt.Fprintf(tty, format, args...)
	} else {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func runForm(form *huh.Form) error {
	// Use /dev/tty directly to bypass shell redirections
	if tty, err := OpenTTY(); err == nil {
		defer tty.Close()
		form = form.WithInput(tty).WithOutput(tty)
	}
	return form.Run()
}

// RunSetupWizard walks through first-time configuration and saves it.
// It is safe to re-run; the saved file is rewritten each time.
func RunSetupWizard() (*config.Config, error) {
	tty, ttyErr := OpenTTY()
	if ttyErr == nil {
		defer tty.Close()
	}
	wizardSay(tty, ttyErr, "Welcome to zsh-ai-cmd! Let's get you set up.\n\n")

	var provider string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which suggestion backend do you want to use?").
				Options(
					huh.NewOption("Anthropic (Claude)", "anthropic"),
					huh.NewOption("OpenAI", "openai"),
					huh.NewOption("Google (Gemini)", "gemini"),
					huh.NewOption("DeepSeek", "deepseek"),
					huh.NewOption("Ollama (local server)", "ollama"),
					huh.NewOption("LM Studio (local server)", "lmstudio"),
					huh.NewOption("Local assistant CLI", "local"),
				).
				Value(&provider),
		),
	)
	if err := runForm(form); err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Provider:       provider,
		TimeoutSeconds: 20,
		Anthropic:      config.AnthropicConfig{Model: defaultModel("anthropic")},
		OpenAI:         config.OpenAIConfig{Model: defaultModel("openai")},
		Gemini:         config.GeminiConfig{Model: defaultModel("gemini")},
		DeepSeek:       config.DeepSeekConfig{Model: defaultModel("deepseek")},
		Ollama:         config.OllamaConfig{BaseURL: "http://localhost:11434/v1"},
		Local:          config.LocalConfig{Command: "claude"},
		History:        config.HistoryConfig{Enabled: true},
	}

	switch provider {
	case "anthropic", "openai", "gemini", "deepseek":
		envVar := providerEnvVar(provider)
		if os.Getenv(envVar) != "" {
			wizardSay(tty, ttyErr, "Found %s in your environment.\n", envVar)
			break
		}

		var apiKey string
		keyForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(fmt.Sprintf("Paste your %s API key", provider)).
					Description(fmt.Sprintf("Leave empty to set %s yourself later", envVar)).
					EchoMode(huh.EchoModePassword).
					Value(&apiKey),
			),
		)
		if err := runForm(keyForm); err != nil {
			return nil, err
		}
		if apiKey != "" {
			if err := credentials.Store(provider, apiKey); err != nil {
				return nil, fmt.Errorf("failed to store API key: %w", err)
			}
			wizardSay(tty, ttyErr, "Key stored in the local secret store.\n")
		} else {
			wizardSay(tty, ttyErr, "No key entered. Set it with:\n  export %s=your-api-key\n", envVar)
		}

	case "ollama":
		baseURL := cfg.Ollama.BaseURL
		var model string
		srvForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Ollama server URL").
					Value(&baseURL),
				huh.NewInput().
					Title("Model name").
					Description("e.g. qwen2.5-coder:7b").
					Value(&model),
			),
		)
		if err := runForm(srvForm); err != nil {
			return nil, err
		}
		cfg.Ollama.BaseURL = baseURL
		cfg.Ollama.Model = model

	case "lmstudio":
		baseURL := "http://localhost:1234/v1"
		srvForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("LM Studio server URL").
					Value(&baseURL),
			),
		)
		if err := runForm(srvForm); err != nil {
			return nil, err
		}
		cfg.LMStudio.BaseURL = baseURL

	case "local":
		command := cfg.Local.Command
		cmdForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Assistant CLI binary").
					Description("Must accept a prompt on stdin and print to stdout").
					Value(&command),
			),
		)
		if err := runForm(cmdForm); err != nil {
			return nil, err
		}
		cfg.Local.Command = command
	}

	if err := config.Save(cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	path, _ := config.GetConfigPath()
	wizardSay(tty, ttyErr, "Config saved to %s\n\n", path)

	// Reload to pick up env vars and the secret store
	return config.Load()
}
