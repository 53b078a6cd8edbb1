package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// Expert is one chat with a specialized model persona. The facilitator
// reaches experts through their function declarations, each expert keeps
// its own conversation context.
type Expert struct {
	Name        string
	Description string
	ModelName   string
	Config      *genai.GenerateContentConfig
	Library     Library
	chat        *genai.Chat
}

func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Ask sends parts to the expert and resolves any function calls it makes
// before returning the final textual content.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	resp, err := e.chat.Send(ctx, parts...)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from expert %s", e.Name)
	}
	part0 := resp.Candidates[0].Content.Parts[0]
	if part0.FunctionCall != nil {
		if e.Library == nil {
			return nil, fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
		}
		fresp := e.Library(ctx, part0.FunctionCall)
		// Feed the answer back until the expert produces text.
		return e.Ask(ctx, &genai.Part{FunctionResponse: fresp})
	}
	return resp.Candidates[0].Content, nil
}

// Declaration exposes the expert itself as a callable function, so a
// facilitator can route questions to it.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question to ask the expert.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "Expert's response.",
		},
	}
}

// Call asks this expert the question carried in a function call.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{
		ID:       id,
		Name:     e.Name,
		Response: map[string]any{},
	}

	question, ok := args["question"].(string)
	if !ok {
		fresp.Response["error"] = fmt.Sprintf("invalid type %T for 'question', expected string", args["question"])
		return fresp
	}

	response, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		fresp.Response["error"] = fmt.Sprintf("expert call failed: %v", err)
		return fresp
	}

	answer := response.Parts[0].Text
	log.Debug().Str("expert", e.Name).Str("question", question).Msg("expert answered")
	fresp.Response["output"] = answer
	return fresp
}
