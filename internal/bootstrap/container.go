package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"notesmd-be/internal/config"
	"notesmd-be/internal/controller"
	"notesmd-be/internal/pkg/logger"
	"notesmd-be/internal/service"
	"notesmd-be/pkg/llm/factory"
	"notesmd-be/pkg/notectx"
	"notesmd-be/pkg/persona"
	"notesmd-be/pkg/storage"
)

type Container struct {
	// Controllers
	NoteController      controller.INoteController
	AssistantController controller.IAssistantController

	// Background services exposed for main to run
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	store, err := storage.NewNoteStore(cfg.Storage.RootDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize note store: %v", err)
	}

	personaRegistry := persona.NewRegistry(cfg.Storage.PersonaAssetDir)
	assembler := notectx.NewAssembler(store)

	// 2. Generation backend
	llmProvider, err := factory.NewProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		providerBaseURL(cfg),
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// 3. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	publisherService := service.NewPublisherService(cfg.Events.NoteActivityTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Events.NoteActivityTopic, store, sysLogger)

	// 4. Services
	noteService := service.NewNoteService(store, sysLogger)
	assistantService := service.NewAssistantService(
		store,
		assembler,
		personaRegistry,
		llmProvider,
		publisherService,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		NoteController:      controller.NewNoteController(noteService),
		AssistantController: controller.NewAssistantController(assistantService),
		ConsumerService:     consumerService,
		Logger:              sysLogger,
	}
}

func providerBaseURL(cfg *config.Config) string {
	if cfg.Ai.Provider == "openai" {
		return cfg.Ai.OpenAIBaseURL
	}
	return cfg.Ai.OllamaBaseURL
}
