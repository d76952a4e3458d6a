package entity

type Emoji struct {
	Symbol string
	Label  string
}

// Emojis - порядок совпадает с порядком в форме отправки
var Emojis = []Emoji{
	{"😊", "happy"},
	{"😐", "neutral"},
	{"😕", "confused"},
	{"😢", "sad"},
	{"😡", "angry"},
	{"🤔", "thinking"},
	{"😴", "sleepy"},
	{"😃", "excited"},
}

func EmojiLabel(symbol string) (string, bool) {
	for _, e := range Emojis {
		if e.Symbol == symbol {
			return e.Label, true
		}
	}
	return "", false
}
