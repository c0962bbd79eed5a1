package services

import (
	"strings"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/sage"
)

// Chat intents recognized by the keyword matcher.
const (
	ChatIntentGreeting = "greeting"
	ChatIntentDeal     = "find_deal"
	ChatIntentPrice    = "price_question"
	ChatIntentAlert    = "set_alert"
	ChatIntentHelp     = "help"
	ChatIntentUnknown  = "unknown"
)

// ChatReply is one answer from the assistant.
type ChatReply struct {
	Intent string `json:"intent"`
	Text   string `json:"text"`
}

// chatRule is one row of the intent table. Rules are checked in order; the
// first rule with a matching keyword wins.
type chatRule struct {
	intent   string
	keywords []string
	en       string
	ar       string
}

var chatRules = []chatRule{
	{
		intent:   ChatIntentGreeting,
		keywords: []string{"hello", "hi ", "hey", "مرحبا", "اهلا", "أهلا", "السلام"},
		en:       "Hi! Tell me what you're shopping for and I'll find the best price.",
		ar:       "مرحباً! أخبرني عما تبحث عنه وسأجد لك أفضل سعر.",
	},
	{
		intent:   ChatIntentDeal,
		keywords: []string{"deal", "cheap", "discount", "offer", "صفقة", "رخيص", "خصم", "عرض"},
		en:       "Run a search for the product and I'll score every listing against the market — the best deal rises to the top.",
		ar:       "ابحث عن المنتج وسأقيّم كل عرض مقابل السوق — أفضل صفقة ستظهر في المقدمة.",
	},
	{
		intent:   ChatIntentPrice,
		keywords: []string{"price", "how much", "cost", "worth", "سعر", "كم", "تكلفة", "يستاهل"},
		en:       "Search for the product and check the verdict: I compare against the market median and tell you if the price is fair.",
		ar:       "ابحث عن المنتج وانظر إلى الحكم: أقارن بالسعر الوسيط في السوق وأخبرك إن كان السعر عادلاً.",
	},
	{
		intent:   ChatIntentAlert,
		keywords: []string{"alert", "notify", "watch", "track", "تنبيه", "أخبرني", "راقب", "تتبع"},
		en:       "Set a price alert with your target and I'll ping you on Telegram when the price drops to it.",
		ar:       "فعّل تنبيه سعر بالمبلغ المستهدف وسأراسلك على تيليجرام عندما ينخفض السعر إليه.",
	},
	{
		intent:   ChatIntentHelp,
		keywords: []string{"help", "how do", "what can", "مساعدة", "كيف", "ماذا"},
		en:       "I can search products, score deals, predict price trends, and alert you on price drops. Just ask!",
		ar:       "أستطيع البحث عن المنتجات وتقييم الصفقات وتوقع اتجاه الأسعار وتنبيهك عند انخفاضها. فقط اسأل!",
	},
}

var unknownReply = chatRule{
	intent: ChatIntentUnknown,
	en:     "I didn't catch that — try asking about a product, a price, or a deal.",
	ar:     "لم أفهم ذلك — جرب أن تسأل عن منتج أو سعر أو صفقة.",
}

// ChatService answers free-text questions with canned localized replies.
type ChatService struct{}

func NewChatService() *ChatService {
	return &ChatService{}
}

// Reply classifies the message and returns the matching canned answer.
func (s *ChatService) Reply(message, locale string) ChatReply {
	lowered := strings.ToLower(message)
	rule := unknownReply
	for _, candidate := range chatRules {
		if matchesAny(lowered, candidate.keywords) {
			rule = candidate
			break
		}
	}

	text := rule.en
	if sage.ShortLang(locale) == "ar" {
		text = rule.ar
	}
	return ChatReply{Intent: rule.intent, Text: text}
}

func matchesAny(message string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}
