package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"nexus/internal/assistant"
	"nexus/internal/client"
	"nexus/internal/launcher"
	"nexus/internal/logging"
	"nexus/internal/response"
	"nexus/internal/ui"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type askOptions struct {
	image  string
	open   bool
	copy   bool
	asJSON bool
}

func newAskCmd() *cobra.Command {
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "ask [prompt...]",
		Short: "Answer a single request",
		Long: `Answer a single request and print the response.
With no arguments the prompt is read from stdin.`,
		Example: `  nexus ask play bohemian rhapsody
  nexus ask --open call 555 0100
  nexus ask --image receipt.jpg what did I buy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.image, "image", "", "attach an image file")
	cmd.Flags().BoolVar(&opts.open, "open", false, "open the primary action")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "copy the action link to the clipboard")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the response as JSON")

	return cmd
}

// askOutput is the --json shape, matching the HTTP API.
type askOutput struct {
	response.Response
	PrimaryAction *response.Action `json:"primaryAction,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string, opts askOptions) error {
	cfg, err := loadValidConfig()
	if err != nil {
		return err
	}
	logging.Configure(logging.ParseLevel(cfg.Logging.Level), cmd.ErrOrStderr())

	turn, err := buildTurn(args, opts.image, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	services, err := assistant.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer services.Close()

	resp := services.Assistant.Respond(ctx, turn)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		payload := askOutput{Response: resp}
		if action, ok := resp.PrimaryAction(); ok {
			payload.PrimaryAction = &action
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, ui.Render(resp, cfg.Output.Markdown && isTerminal(out), 80))
	}

	if opts.open || cfg.Output.AutoOpen {
		_, err := launcher.OpenPrimary(launcher.NewSystemOpener(), resp)
		switch {
		case errors.Is(err, launcher.ErrNoAction):
			if opts.open {
				fmt.Fprintln(cmd.ErrOrStderr(), "nothing to open")
			}
		case err != nil:
			return fmt.Errorf("open action: %w", err)
		}
	}

	if opts.copy {
		url, err := launcher.CopyPrimary(launcher.SystemClipboard{}, resp)
		switch {
		case errors.Is(err, launcher.ErrNoAction):
			fmt.Fprintln(cmd.ErrOrStderr(), "nothing to copy")
		case err != nil:
			return fmt.Errorf("copy link: %w", err)
		default:
			fmt.Fprintf(cmd.ErrOrStderr(), "copied %s\n", url)
		}
	}

	return nil
}

// buildTurn joins args into the prompt, reading stdin when there are none.
func buildTurn(args []string, imagePath string, stdin io.Reader) (assistant.Turn, error) {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" && imagePath == "" {
		if f, ok := stdin.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return assistant.Turn{}, fmt.Errorf("read prompt: %w", err)
			}
			prompt = strings.TrimSpace(string(data))
		}
	}

	turn := assistant.Turn{Prompt: prompt}
	if imagePath != "" {
		img, err := client.LoadImage(imagePath)
		if err != nil {
			return assistant.Turn{}, err
		}
		turn.Image = img
		turn.Prompt = assistant.ImagePrompt(prompt)
	}

	if turn.Prompt == "" {
		return assistant.Turn{}, errors.New("prompt or image is required")
	}
	return turn, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
