package main

import (
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"lifestory-core/internal/api"
	"lifestory-core/internal/cards"
	"lifestory-core/internal/cardstore"
	"lifestory-core/internal/config"
	"lifestory-core/internal/extractor"
	"lifestory-core/internal/interviewer"
	"lifestory-core/internal/metrics"
	"lifestory-core/internal/server"
	"lifestory-core/internal/session"
)

func main() {
	fmt.Println("🚀 Запуск Lifestory Interview Core...")

	// Загружаем переменные окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используем переменные окружения")
	}

	appCfg := config.LoadAppConfig()

	// Загружаем банк вопросов
	bank, err := config.Load(appCfg.Storage.QuestionsFile)
	if err != nil {
		log.Fatalf("Ошибка загрузки банка вопросов: %v", err)
	}

	// Инициализируем сервисы
	fmt.Println("🔧 Инициализация сервисов...")

	db, err := cardstore.Open(appCfg.Storage.CardsDB)
	if err != nil {
		log.Fatalf("Ошибка открытия базы карточек: %v", err)
	}
	defer db.Close()
	cardRepo := cardstore.NewRepository(db)
	color.Green("✅ Хранилище карточек готово (%s)", appCfg.Storage.CardsDB)

	persist := session.NewFilePersistence(appCfg.Storage.SessionsDir)
	sessions := session.NewStore(persist, bank)

	extract := extractor.New()

	// OpenAI опционален: без ключа вопросы идут из банка,
	// изображения заменяются заглушкой
	var oracle interviewer.QuestionOracle
	var images cards.ImageSynthesizer
	if appCfg.OpenAI.APIKey != "" {
		client := api.NewClient(appCfg.OpenAI)
		oracle = client
		images = client
		color.Green("✅ OpenAI клиент инициализирован (%s)", appCfg.OpenAI.Model)
	} else {
		color.Yellow("⚠️ OPENAI_API_KEY не установлен: вопросы из банка, изображения-заглушки")
	}

	synth := cards.NewSynthesizer(extract, images)
	m := metrics.New()

	svc := interviewer.New(bank, sessions, extract, synth, cardRepo, oracle, m)
	srv := server.New(svc, cardRepo, m)

	// Выводим информацию о конфигурации
	fmt.Println("\n📋 Конфигурация интервью:")
	fmt.Printf("• Этапов: %d\n", bank.GetTotalStages())
	fmt.Printf("• Всего вопросов: %d\n", bank.GetTotalQuestions())

	fmt.Printf("\n🌐 HTTP API слушает порт %d\n", appCfg.Server.Port)
	if err := srv.Run(appCfg.Server); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
