package llm

// KnownModels модели Groq, с которыми релей проверялся.
var KnownModels = []ModelInfo{
	{
		ID:          "llama-3.3-70b-versatile",
		Name:        "Llama 3.3 70B Versatile",
		Description: "Default model for nutrition answers",
	},
	{
		ID:          "llama-3.1-8b-instant",
		Name:        "Llama 3.1 8B Instant",
		Description: "Fast and cheap, shorter answers",
	},
	{
		ID:          "openai/gpt-oss-120b",
		Name:        "GPT-OSS 120B",
		Description: "Open-weight OpenAI model hosted by Groq",
	},
	{
		ID:          "qwen/qwen3-32b",
		Name:        "Qwen3 32B",
		Description: "Multilingual model",
	},
}

// ModelInfo описывает информацию о модели.
type ModelInfo struct {
	ID          string // Идентификатор модели для API
	Name        string // Короткое название для отображения
	Description string
}

// GetModelByID возвращает информацию о модели по её ID или nil.
func GetModelByID(modelID string) *ModelInfo {
	for _, m := range KnownModels {
		if m.ID == modelID {
			return &m
		}
	}
	return nil
}

func IsKnownModel(modelID string) bool {
	return GetModelByID(modelID) != nil
}

// GetModelName возвращает короткое название модели по её ID.
// Если модель не найдена, возвращает сам ID.
func GetModelName(modelID string) string {
	if info := GetModelByID(modelID); info != nil {
		return info.Name
	}
	return modelID
}
