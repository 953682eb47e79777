package config

// Config представляет банк вопросов интервью: упорядоченный список
// тематических этапов. Порядок этапов в файле фиксирует порядок
// прохождения интервью. Конфигурация неизменяемая: загружается один раз
// и передается в конструкторы, а не читается как глобальное состояние.
type Config struct {
	Stages []Stage `yaml:"stages"`
}

// Stage представляет один тематический этап интервью
type Stage struct {
	Name      string     `yaml:"name"`
	Title     string     `yaml:"title"`
	Questions []Question `yaml:"questions"`
}

// Question представляет один вопрос этапа
type Question struct {
	Text             string `yaml:"text"`
	ContextKey       string `yaml:"context_key,omitempty"`
	FollowUpTemplate string `yaml:"follow_up_template,omitempty"`
}

// Методы для удобного доступа к конфигурации
func (c *Config) GetTotalStages() int {
	return len(c.Stages)
}

func (c *Config) GetTotalQuestions() int {
	total := 0
	for _, stage := range c.Stages {
		total += len(stage.Questions)
	}
	return total
}

// GetStageIndex возвращает позицию этапа в порядке прохождения
// или -1, если этап не объявлен в конфигурации
func (c *Config) GetStageIndex(name string) int {
	for i, stage := range c.Stages {
		if stage.Name == name {
			return i
		}
	}
	return -1
}

// GetStageQuestions возвращает вопросы этапа по имени
func (c *Config) GetStageQuestions(name string) []Question {
	idx := c.GetStageIndex(name)
	if idx < 0 {
		return nil
	}
	return c.Stages[idx].Questions
}

// FirstStage возвращает имя первого этапа
func (c *Config) FirstStage() string {
	if len(c.Stages) == 0 {
		return ""
	}
	return c.Stages[0].Name
}
