package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LocalePTBR = "pt-BR"
	LocaleEN   = "en-US"
)

// DefaultLocale 未指定语言时使用葡萄牙语
const DefaultLocale = LocalePTBR

var supportedTags = []language.Tag{
	language.BrazilianPortuguese,
	language.AmericanEnglish,
}

var matcher = language.NewMatcher(supportedTags)

var tagLocales = map[language.Tag]string{
	language.BrazilianPortuguese: LocalePTBR,
	language.AmericanEnglish:     LocaleEN,
}

// T 翻译 key，缺失时依次回退到默认语言与 key 本身
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	if msg, ok := lookup(DefaultLocale, key); ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// Normalize 将任意语言标识归一到支持的语言
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLocale
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return DefaultLocale
	}
	return match(tag)
}

// ResolveLocale 依次读取 ?lang、X-Locale 与 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return Normalize(lang)
	}
	if lang := strings.TrimSpace(c.GetHeader("X-Locale")); lang != "" {
		return Normalize(lang)
	}
	accept := strings.TrimSpace(c.GetHeader("Accept-Language"))
	if accept == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	return match(tags...)
}

func match(tags ...language.Tag) string {
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return tagLocales[supportedTags[index]]
}

func lookup(locale, key string) (string, bool) {
	table, ok := messages[locale]
	if !ok {
		return "", false
	}
	msg, ok := table[key]
	return msg, ok
}
