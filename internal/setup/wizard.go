// Package setup is the first-run wizard that writes an initial config file.
package setup

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nexus/internal/config"
	"nexus/internal/security"

	"github.com/ollama/ollama/api"
	"gopkg.in/yaml.v3"
)

// ANSI color codes for enhanced output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

const welcomeMessage = `
%s╔═══════════════════════════════════════════════════╗
║                 %sWelcome to Nexus!%s                 ║
║     Ask it to play, call, open, find or search    ║
╚═══════════════════════════════════════════════════╝%s

Nexus needs a Gemini API key for grounded search and video lookup.
Intent classification can run on Gemini or on a local Ollama model.
`

const providerChoiceMessage = `
%sClassify intents with:%s

  %s[1]%s Gemini          • Same key as search, nothing else to run
  %s[2]%s Ollama (Local)  • Private classification, requires: ollama serve

%sEnter your choice (1-2, default 1):%s `

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Result is what the wizard writes.
type Result struct {
	Path          string
	GeminiKey     string
	Provider      string
	Model         string
	OllamaBaseURL string
}

// Wizard asks for credentials and writes the config file. Validate and
// ListModels default to live network checks.
type Wizard struct {
	In         io.Reader
	Out        io.Writer
	Path       string
	Validate   func(ctx context.Context, geminiKey string) error
	ListModels func(ctx context.Context, baseURL string) ([]string, error)
	Getenv     func(string) string
}

// RunSetupWizard runs the wizard on the terminal and writes the default
// config path.
func RunSetupWizard() error {
	_, err := (&Wizard{}).Run(context.Background())
	return err
}

func (w *Wizard) defaults() {
	if w.In == nil {
		w.In = os.Stdin
	}
	if w.Out == nil {
		w.Out = os.Stdout
	}
	if w.Path == "" {
		w.Path = config.GetConfigPath()
	}
	if w.Validate == nil {
		w.Validate = validateGeminiKey
	}
	if w.ListModels == nil {
		w.ListModels = listOllamaModels
	}
	if w.Getenv == nil {
		w.Getenv = os.Getenv
	}
}

// Run walks through the prompts and saves the result.
func (w *Wizard) Run(ctx context.Context) (*Result, error) {
	w.defaults()
	if w.Path == "" {
		return nil, errors.New("cannot determine config path")
	}

	reader := bufio.NewReader(w.In)
	fmt.Fprintf(w.Out, welcomeMessage, colorCyan, colorBold, colorCyan, colorReset)

	key, err := w.geminiKey(ctx, reader)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Path:      w.Path,
		GeminiKey: key,
		Provider:  config.ProviderGemini,
		Model:     config.DefaultModel,
	}

	fmt.Fprintf(w.Out, providerChoiceMessage, colorYellow, colorReset, colorGreen, colorReset, colorGreen, colorReset, colorCyan, colorReset)
	choice, err := readLine(reader)
	if err != nil {
		return nil, err
	}
	if choice == "2" {
		if err := w.setupOllama(ctx, reader, res); err != nil {
			return nil, err
		}
	}

	if err := save(res); err != nil {
		return nil, err
	}

	fmt.Fprintf(w.Out, "\n%s✓ Configuration saved!%s\n", colorGreen, colorReset)
	fmt.Fprintf(w.Out, "  %sConfig:%s %s\n", colorYellow, colorReset, res.Path)
	fmt.Fprintf(w.Out, "  %sClassifier:%s %s (%s)\n", colorYellow, colorReset, res.Provider, res.Model)
	w.showNextSteps()
	return res, nil
}

// geminiKey offers a key found in the environment, then asks for one.
func (w *Wizard) geminiKey(ctx context.Context, reader *bufio.Reader) (string, error) {
	for _, envVar := range security.GeminiKeyEnvVars {
		key := strings.TrimSpace(w.Getenv(envVar))
		if key == "" {
			continue
		}

		fmt.Fprintf(w.Out, "\n%s✓ Found %s in environment.%s\n", colorGreen, envVar, colorReset)
		fmt.Fprintf(w.Out, "%sUse it? [Y/n]:%s ", colorCyan, colorReset)
		answer, err := readLine(reader)
		if err != nil {
			return "", err
		}
		answer = strings.ToLower(answer)
		if answer != "" && answer != "y" && answer != "yes" {
			break
		}
		if err := w.check(ctx, key); err != nil {
			fmt.Fprintf(w.Out, "\n%s⚠ Key validation failed: %s%s\n", colorRed, err, colorReset)
			fmt.Fprintf(w.Out, "%sContinuing with manual setup...%s\n", colorYellow, colorReset)
			break
		}
		return key, nil
	}

	fmt.Fprintf(w.Out, "\n%s─── Gemini API Key ───%s\n", colorCyan, colorReset)
	fmt.Fprintf(w.Out, "\n%sGet your key at:%s\n  %shttps://aistudio.google.com/apikey%s\n\n", colorYellow, colorReset, colorBold, colorReset)
	fmt.Fprintf(w.Out, "%sEnter API key:%s ", colorGreen, colorReset)

	key, err := readLine(reader)
	if err != nil {
		return "", err
	}
	if err := security.ValidateKeyFormat(key); err != nil {
		return "", fmt.Errorf("invalid API key format: %w", err)
	}
	if err := w.check(ctx, key); err != nil {
		return "", fmt.Errorf("API key validation failed: %w", err)
	}
	return key, nil
}

func (w *Wizard) check(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	done := make(chan struct{})
	var err error
	go func() {
		err = w.Validate(ctx, key)
		close(done)
	}()
	w.spin("Validating API key...", done)
	return err
}

func (w *Wizard) setupOllama(ctx context.Context, reader *bufio.Reader, res *Result) error {
	fmt.Fprintf(w.Out, "\n%sOllama server URL (press Enter for '%s'):%s ", colorGreen, config.DefaultOllamaBaseURL, colorReset)
	serverURL, err := readLine(reader)
	if err != nil {
		return err
	}
	if serverURL == "" {
		serverURL = config.DefaultOllamaBaseURL
	}

	listCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	models, err := w.ListModels(listCtx, serverURL)
	cancel()

	fallback := "llama3.2"
	switch {
	case err != nil:
		fmt.Fprintf(w.Out, "  %s⚠ Could not connect to Ollama: %s%s\n", colorRed, err, colorReset)
	case len(models) == 0:
		fmt.Fprintf(w.Out, "  %s⚠ No models installed. Run: ollama pull llama3.2%s\n", colorYellow, colorReset)
	default:
		fmt.Fprintf(w.Out, "  %s✓ Found %d installed model(s):%s\n", colorGreen, len(models), colorReset)
		for i, m := range models {
			if i == 5 {
				fmt.Fprintf(w.Out, "    • ... and %d more\n", len(models)-5)
				break
			}
			fmt.Fprintf(w.Out, "    • %s\n", m)
		}
		fallback = models[0]
	}

	fmt.Fprintf(w.Out, "\n%sEnter model name (or press Enter for '%s'):%s ", colorGreen, fallback, colorReset)
	name, err := readLine(reader)
	if err != nil {
		return err
	}
	if name == "" {
		name = fallback
	}

	res.Provider = config.ProviderOllama
	res.Model = name
	if serverURL != config.DefaultOllamaBaseURL {
		res.OllamaBaseURL = serverURL
	}
	return nil
}

func (w *Wizard) showNextSteps() {
	fmt.Fprintf(w.Out, `
%s─── Next Steps ───%s

  1. Run %snexus chat%s for the terminal chat
  2. Or ask once: %snexus ask play lofi beats%s
  3. Serve the HTTP API with %snexus serve%s
`, colorCyan, colorReset, colorBold, colorReset, colorBold, colorReset, colorBold, colorReset)
}

// spin shows a spinner until done is closed. It only animates on a terminal.
func (w *Wizard) spin(message string, done <-chan struct{}) {
	if f, ok := w.Out.(*os.File); !ok || f != os.Stdout {
		<-done
		return
	}
	for i := 0; ; i++ {
		select {
		case <-done:
			fmt.Fprintf(w.Out, "\r%s\r", strings.Repeat(" ", len(message)+10))
			return
		case <-time.After(80 * time.Millisecond):
			fmt.Fprintf(w.Out, "\r%s %s", spinnerFrames[i%len(spinnerFrames)], message)
		}
	}
}

type fileConfig struct {
	API struct {
		GeminiKey     string `yaml:"gemini_key"`
		OllamaBaseURL string `yaml:"ollama_base_url,omitempty"`
	} `yaml:"api"`
	Model struct {
		Provider string `yaml:"provider"`
		Name     string `yaml:"name"`
	} `yaml:"model"`
}

func save(res *Result) error {
	var fc fileConfig
	fc.API.GeminiKey = res.GeminiKey
	fc.API.OllamaBaseURL = res.OllamaBaseURL
	fc.Model.Provider = res.Provider
	fc.Model.Name = res.Model

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(res.Path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(res.Path, data, 0600); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// validateGeminiKey lists models with the key; 401/403 means it is wrong.
func validateGeminiKey(ctx context.Context, apiKey string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://generativelanguage.googleapis.com/v1beta/models?key="+url.QueryEscape(apiKey), nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("invalid API key (HTTP %d)", resp.StatusCode)
	case resp.StatusCode == http.StatusBadRequest:
		return errors.New("invalid API key")
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected response (HTTP %d)", resp.StatusCode)
	}
	return nil
}

func listOllamaModels(ctx context.Context, serverURL string) ([]string, error) {
	baseURL, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	resp, err := api.NewClient(baseURL, &http.Client{Timeout: 5 * time.Second}).List(ctx)
	if err != nil {
		return nil, err
	}

	models := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		models = append(models, m.Name)
	}
	return models, nil
}
