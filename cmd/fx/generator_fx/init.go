package generator_fx

import (
	"log"
	"os"

	"go.uber.org/fx"

	"fitmind/pkg/utils"
)

var Module = fx.Provide(provideGeneratorClient)

func provideGeneratorClient() utils.GeneratorClientInterface {
	provider := os.Getenv("GENERATOR_PROVIDER")

	if provider == "gemini" {
		client, err := utils.NewGeminiGeneratorClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		return client
	}

	client, err := utils.NewOpenAIGeneratorClient(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL"))
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}
	return client
}
