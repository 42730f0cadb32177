package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if o == nil || len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Типы вопросов анкеты
const (
	QuestionTypeText   = "text"
	QuestionTypeSingle = "single_choice"
	QuestionTypeMulti  = "multi_choice"
	QuestionTypeSlider = "slider"
)

// Question представляет вопрос анкеты
type Question struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	SurveyID  uint        `gorm:"not null;index" json:"survey_id"`
	Text      string      `gorm:"size:500;not null" json:"text"`
	Type      string      `gorm:"size:20;not null;default:'text'" json:"type"`
	Options   StringArray `gorm:"type:jsonb;not null" json:"options"`
	ImageURL  string      `gorm:"size:255;not null;default:''" json:"image_url"`
	Position  int         `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// AllowsMultipleAnswers возвращает true для вопросов с множественным выбором
func (q *Question) AllowsMultipleAnswers() bool {
	return q.Type == QuestionTypeMulti
}
