package router

import (
	"fmt"
	"sort"
	"strings"
)

// Texts holds every canned string the router sends or matches against.
type Texts struct {
	Welcome string
	Help    string

	Button1  string
	Button2  string
	Pressed1 string
	Pressed2 string

	KeyboardPrompt  string
	Options         [4]string
	RemoveKeyboard  string
	KeyboardRemoved string

	PhotoURL     string
	PhotoCaption string

	DocumentName    string
	DocumentBody    string
	DocumentCaption string

	PollQuestion string
	PollOptions  []string

	// Format strings, each taking the user's text or file name.
	Selected         string
	Echo             string
	DocumentReceived string

	PhotoReceived string
}

const (
	DataButton1 = "btn1"
	DataButton2 = "btn2"
)

var pollLanguages = []string{"Python", "JavaScript", "Java", "C++"}

var English = Texts{
	Welcome: "Hello! I am a test bot.\n\n" +
		"Available commands:\n" +
		"/start - start\n" +
		"/help - help\n" +
		"/keyboard - show keyboard\n" +
		"/photo - send a photo\n" +
		"/document - send a document\n" +
		"/poll - create a poll",
	Help: "This is a test bot with basic features:\n\n" +
		"📝 Sending text\n" +
		"⌨️ Keyboards (inline and reply)\n" +
		"📷 Sending photos\n" +
		"📄 Sending files\n" +
		"📊 Creating polls\n" +
		"💬 Message handling\n\n" +
		"Try the different commands!",

	Button1:  "Button 1",
	Button2:  "Button 2",
	Pressed1: "You pressed Button 1! 👍",
	Pressed2: "You pressed Button 2! 🎉",

	KeyboardPrompt:  "Choose an option from the keyboard:",
	Options:         [4]string{"Option 1", "Option 2", "Option 3", "Option 4"},
	RemoveKeyboard:  "Remove keyboard",
	KeyboardRemoved: "Keyboard removed ✅",

	PhotoURL:     "https://picsum.photos/400/300",
	PhotoCaption: "This is a test photo 📷",

	DocumentName:    "test.txt",
	DocumentBody:    "Hello! This is a test document.\n",
	DocumentCaption: "Test document 📄",

	PollQuestion: "What is your favorite programming language?",
	PollOptions:  pollLanguages,

	Selected:         "You selected: %s",
	Echo:             "You wrote: %s\n\nSend /help for command list",
	DocumentReceived: "Document received: %s",

	PhotoReceived: "Got your photo! 📸",
}

var Russian = Texts{
	Welcome: "Привет! Я тестовый бот.\n\n" +
		"Доступные команды:\n" +
		"/start - начать\n" +
		"/help - помощь\n" +
		"/keyboard - показать клавиатуру\n" +
		"/photo - отправить фото\n" +
		"/document - отправить документ\n" +
		"/poll - создать опрос",
	Help: "Это тестовый бот с базовыми функциями:\n\n" +
		"📝 Отправка текста\n" +
		"⌨️ Клавиатуры (inline и reply)\n" +
		"📷 Отправка фото\n" +
		"📄 Отправка файлов\n" +
		"📊 Создание опросов\n" +
		"💬 Обработка сообщений\n\n" +
		"Попробуйте разные команды!",

	Button1:  "Кнопка 1",
	Button2:  "Кнопка 2",
	Pressed1: "Вы нажали Кнопку 1! 👍",
	Pressed2: "Вы нажали Кнопку 2! 🎉",

	KeyboardPrompt:  "Выберите опцию из клавиатуры:",
	Options:         [4]string{"Опция 1", "Опция 2", "Опция 3", "Опция 4"},
	RemoveKeyboard:  "Убрать клавиатуру",
	KeyboardRemoved: "Клавиатура убрана ✅",

	PhotoURL:     "https://picsum.photos/400/300",
	PhotoCaption: "Это тестовое фото 📷",

	DocumentName:    "test.txt",
	DocumentBody:    "Hello! This is a test document.\nЭто тестовый документ.",
	DocumentCaption: "Тестовый документ 📄",

	PollQuestion: "Какой ваш любимый язык программирования?",
	PollOptions:  pollLanguages,

	Selected:         "Вы выбрали: %s",
	Echo:             "Вы написали: %s\n\nОтправьте /help для списка команд",
	DocumentReceived: "Получил документ: %s 📎",

	PhotoReceived: "Получил ваше фото! 📸",
}

var catalog = map[string]Texts{
	"en": English,
	"ru": Russian,
}

// Languages lists the supported language codes.
func Languages() []string {
	langs := make([]string, 0, len(catalog))
	for l := range catalog {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// TextsFor returns the catalog for lang. Empty means English.
func TextsFor(lang string) (Texts, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return English, nil
	}
	t, ok := catalog[lang]
	if !ok {
		return Texts{}, fmt.Errorf("unsupported language %q (want one of %s)", lang, strings.Join(Languages(), ", "))
	}
	return t, nil
}
