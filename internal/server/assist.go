package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"nexus/internal/assistant"
	"nexus/internal/client"
	"nexus/internal/response"

	"github.com/gofiber/fiber/v2"
)

type imagePayload struct {
	Data     string `json:"data"` // base64 or data URL
	MIMEType string `json:"mimeType"`
}

type assistRequest struct {
	Prompt string        `json:"prompt"`
	Image  *imagePayload `json:"image,omitempty"`
}

type assistResponse struct {
	response.Response
	PrimaryAction *response.Action `json:"primaryAction,omitempty"`
}

func (s *Server) handleAssist(c *fiber.Ctx) error {
	turn, err := parseTurn(c)
	if err != nil {
		return err
	}

	resp := s.assistant.Respond(c.UserContext(), turn)

	out := assistResponse{Response: resp}
	if action, ok := resp.PrimaryAction(); ok {
		out.PrimaryAction = &action
	}
	return c.JSON(out)
}

func parseTurn(c *fiber.Ctx) (assistant.Turn, error) {
	var turn assistant.Turn

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		turn.Prompt = c.FormValue("prompt")

		if fh, err := c.FormFile("image"); err == nil {
			img, err := readUpload(fh)
			if err != nil {
				return turn, fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			turn.Image = img
		}
	} else {
		var req assistRequest
		if err := c.BodyParser(&req); err != nil {
			return turn, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		turn.Prompt = req.Prompt

		if req.Image != nil && req.Image.Data != "" {
			img, err := client.DecodeImage(req.Image.Data, req.Image.MIMEType)
			if err != nil {
				return turn, fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			turn.Image = img
		}
	}

	if strings.TrimSpace(turn.Prompt) == "" {
		if turn.Image == nil {
			return turn, fiber.NewError(fiber.StatusBadRequest, "prompt or image is required")
		}
		turn.Prompt = assistant.ImagePrompt("")
	}

	return turn, nil
}

func readUpload(fh *multipart.FileHeader) (*client.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, client.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	// Multipart clients often send application/octet-stream; sniff instead.
	mimeType := fh.Header.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = ""
	}
	return client.NewImage(data, mimeType)
}
