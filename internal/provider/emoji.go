package provider

import (
	"context"
	"strings"
)

// emojiProvider serves a static table; selecting an entry copies the
// character to the clipboard.
type emojiProvider struct{}

func NewEmoji(Deps) (Provider, error) {
	return &emojiProvider{}, nil
}

func (*emojiProvider) Mode() Mode         { return ModeEmoji }
func (*emojiProvider) Prefixes() []string { return []string{"e", "emoji"} }

func (p *emojiProvider) List(_ context.Context, query string) ([]Result, error) {
	lowered := strings.ToLower(strings.TrimSpace(query))

	out := []Result{}
	for _, entry := range emojiTable {
		if lowered != "" && !emojiMatches(entry, lowered) {
			continue
		}
		// Keyword hits ("smile" for 😀) never show in the title, so
		// they carry their own score past the engine's rescoring.
		score := 0.0
		if lowered != "" && !strings.Contains(entry.name, lowered) {
			score = 0.3
		}
		out = append(out, Result{
			Title:    entry.char + "  " + entry.name,
			Subtitle: "Copy to clipboard",
			Score:    score,
			Action:   Action{Kind: ActionCopy, Text: entry.char},
		})
	}
	return out, nil
}

func emojiMatches(entry emojiEntry, lowered string) bool {
	if strings.Contains(entry.name, lowered) {
		return true
	}
	for _, keyword := range entry.keywords {
		if strings.Contains(keyword, lowered) {
			return true
		}
	}
	return false
}

type emojiEntry struct {
	char     string
	name     string
	keywords []string
}

var emojiTable = []emojiEntry{
	{"😀", "grinning face", []string{"smile", "happy"}},
	{"😂", "face with tears of joy", []string{"laugh", "lol", "funny"}},
	{"😅", "grinning face with sweat", []string{"relief", "nervous"}},
	{"😊", "smiling face with smiling eyes", []string{"blush", "happy"}},
	{"😍", "smiling face with heart eyes", []string{"love", "crush"}},
	{"😎", "smiling face with sunglasses", []string{"cool"}},
	{"😢", "crying face", []string{"sad", "tear"}},
	{"😭", "loudly crying face", []string{"sob", "sad"}},
	{"😡", "pouting face", []string{"angry", "mad"}},
	{"😴", "sleeping face", []string{"tired", "zzz"}},
	{"🤔", "thinking face", []string{"hmm", "think"}},
	{"🤯", "exploding head", []string{"mind blown", "shocked"}},
	{"🙃", "upside down face", []string{"silly", "sarcasm"}},
	{"🙄", "face with rolling eyes", []string{"eyeroll", "whatever"}},
	{"😬", "grimacing face", []string{"awkward"}},
	{"🥳", "partying face", []string{"party", "celebrate"}},
	{"🤝", "handshake", []string{"deal", "agreement"}},
	{"👍", "thumbs up", []string{"ok", "yes", "approve", "+1"}},
	{"👎", "thumbs down", []string{"no", "disapprove", "-1"}},
	{"👋", "waving hand", []string{"hello", "bye", "wave"}},
	{"👏", "clapping hands", []string{"applause", "bravo"}},
	{"🙏", "folded hands", []string{"thanks", "please", "pray"}},
	{"💪", "flexed biceps", []string{"strong", "muscle"}},
	{"🤞", "crossed fingers", []string{"luck", "hope"}},
	{"✌️", "victory hand", []string{"peace"}},
	{"❤️", "red heart", []string{"love"}},
	{"💔", "broken heart", []string{"sad", "heartbreak"}},
	{"🔥", "fire", []string{"hot", "lit", "flame"}},
	{"✨", "sparkles", []string{"shiny", "magic"}},
	{"⭐", "star", []string{"favorite"}},
	{"🎉", "party popper", []string{"celebration", "congrats", "tada"}},
	{"🎂", "birthday cake", []string{"birthday", "cake"}},
	{"🎁", "wrapped gift", []string{"present", "gift"}},
	{"☕", "hot beverage", []string{"coffee", "tea"}},
	{"🍕", "pizza", []string{"food"}},
	{"🍺", "beer mug", []string{"drink", "beer"}},
	{"🌙", "crescent moon", []string{"night", "moon"}},
	{"🚀", "rocket", []string{"launch", "ship", "fast"}},
	{"✈️", "airplane", []string{"travel", "flight"}},
	{"🚗", "automobile", []string{"car", "drive"}},
	{"🏠", "house", []string{"home"}},
	{"💻", "laptop", []string{"computer", "code"}},
	{"📱", "mobile phone", []string{"phone"}},
	{"📧", "e-mail", []string{"email", "mail"}},
	{"📅", "calendar", []string{"date", "schedule"}},
	{"📌", "pushpin", []string{"pin", "important"}},
	{"🔒", "locked", []string{"secure", "lock"}},
	{"🔑", "key", []string{"password", "unlock"}},
	{"⚡", "high voltage", []string{"lightning", "fast", "zap"}},
	{"☀️", "sun", []string{"sunny", "weather"}},
	{"🌧️", "cloud with rain", []string{"rain", "weather"}},
	{"❄️", "snowflake", []string{"snow", "cold", "winter"}},
	{"🌈", "rainbow", []string{"pride", "weather"}},
	{"🐛", "bug", []string{"insect", "error"}},
	{"🐱", "cat face", []string{"cat", "kitty"}},
	{"🐶", "dog face", []string{"dog", "puppy"}},
	{"✅", "check mark button", []string{"done", "yes", "complete"}},
	{"❌", "cross mark", []string{"no", "wrong", "delete"}},
	{"⚠️", "warning", []string{"caution", "alert"}},
	{"❓", "question mark", []string{"question", "help"}},
	{"💯", "hundred points", []string{"perfect", "100"}},
	{"💡", "light bulb", []string{"idea"}},
	{"🧠", "brain", []string{"smart", "mind"}},
	{"👀", "eyes", []string{"look", "watch"}},
	{"🤖", "robot", []string{"bot", "ai"}},
}
