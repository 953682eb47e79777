package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load загружает банк вопросов из YAML файла
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга YAML: %w", err)
	}

	// Валидация конфигурации
	err = validateConfig(&config)
	if err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return &config, nil
}

// validateConfig проверяет корректность банка вопросов
func validateConfig(config *Config) error {
	if len(config.Stages) == 0 {
		return fmt.Errorf("банк вопросов должен содержать хотя бы один этап")
	}

	seen := make(map[string]bool, len(config.Stages))
	for i, stage := range config.Stages {
		if stage.Name == "" {
			return fmt.Errorf("этап %d должен иметь name", i)
		}

		if stage.Title == "" {
			return fmt.Errorf("этап %q должен иметь title", stage.Name)
		}

		if seen[stage.Name] {
			return fmt.Errorf("этап %q объявлен повторно", stage.Name)
		}
		seen[stage.Name] = true

		if len(stage.Questions) == 0 {
			return fmt.Errorf("этап %q должен содержать хотя бы один вопрос", stage.Name)
		}

		for j, question := range stage.Questions {
			if question.Text == "" {
				return fmt.Errorf("вопрос %d этапа %q не должен быть пустым", j, stage.Name)
			}
		}
	}

	return nil
}
