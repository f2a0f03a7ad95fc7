package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	gopenai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"

	"github.com/codemaster-omvardhan/Echo-Tale/core/storygen"
)

// CompleteStructured prompts the model for a JSON document matching the
// schema of T and unmarshals the response into it.
func CompleteStructured[T any](ctx context.Context, client *Client, prompt string, outputSchema T) (*T, error) {
	ctx, span := tracer.Start(ctx, "complete structured")
	defer span.End()

	reflector := jsonschema.Reflector{DoNotReference: true}
	var (
		schema         *jsonschema.Schema
		outputTypeName string
	)
	if reflect.TypeOf(outputSchema).Kind() == reflect.Ptr {
		schema = reflector.ReflectFromType(reflect.TypeOf(outputSchema).Elem())
		outputTypeName = reflect.TypeOf(outputSchema).Elem().Name()
	} else {
		schema = reflector.Reflect(outputSchema)
		outputTypeName = reflect.TypeOf(outputSchema).Name()
	}

	schemaString, _ := schema.MarshalJSON()
	span.SetAttributes(
		attribute.String("request.model", client.model),
		attribute.String("request.schema", string(schemaString)),
	)

	resp, err := client.api.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model: client.model,
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &gopenai.ChatCompletionResponseFormat{
			Type: gopenai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &gopenai.ChatCompletionResponseFormatJSONSchema{
				Name:   outputTypeName,
				Schema: schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("structured completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("structured completion returned no choices")
	}

	// Some models wrap the document in a code fence despite the schema.
	content := resp.Choices[0].Message.Content
	if split := strings.Split(content, "```"); len(split) > 1 {
		content = strings.TrimPrefix(split[1], "json")
	}

	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &outputSchema); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error unmarshalling response: %w", err)
	}

	return &outputSchema, nil
}

const openingPromptTemplate = `Write the opening scene of an interactive spoken adventure about %s. Give one short paragraph in second person describing where the player finds themselves, then two distinct choices for what they can do next. Keep the paragraph under 100 words.`

// GenerateOpening asks the model for a structured opening scene. An empty
// theme falls back to a classic fantasy setting.
func (c *Client) GenerateOpening(ctx context.Context, theme string) (*storygen.Opening, error) {
	if theme == "" {
		theme = "a classic fantasy adventure"
	}

	opening, err := CompleteStructured(ctx, c, fmt.Sprintf(openingPromptTemplate, theme), storygen.Opening{})
	if err != nil {
		return nil, err
	}
	if opening.Story == "" || opening.FirstChoice == "" || opening.SecondChoice == "" {
		return nil, fmt.Errorf("opening scene is missing fields")
	}

	return opening, nil
}
