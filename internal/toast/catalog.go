package toast

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/firesafetykz/portal/internal/domain"
)

var supported = []language.Tag{language.Russian, language.Kazakh}

var matcher = language.NewMatcher(supported)

// entries holds ru and kk texts per key. Format verbs follow fmt; kk uses
// explicit argument indexes where the word order differs.
var entries = map[string][2]string{
	keyAuthErrorTitle:    {"Ошибка авторизации", "Авторизация қатесі"},
	keyAuthErrorBody:     {"Не удалось подтвердить вход. Уведомления недоступны.", "Кіруді растау мүмкін болмады. Хабарламалар қолжетімсіз."},
	keyNewBidTitle:       {"Новая ставка", "Жаңа ұсыныс"},
	keyNewBidBody:        {"%s предлагает %v ₸ за «%s»", "%[1]s «%[3]s» үшін %[2]v ₸ ұсынады"},
	keyNewBidBodyAnon:    {"Новое предложение по объявлению «%s»", "«%s» хабарландыруына жаңа ұсыныс"},
	keyBidStatusTitle:    {"Статус ставки изменён", "Ұсыныс мәртебесі өзгерді"},
	keyBidStatusBody:     {"«%s»: %s", "«%s»: %s"},
	keyNewOrderTitle:     {"Новый заказ", "Жаңа тапсырыс"},
	keyOrderStatusTitle:  {"Статус заказа изменён", "Тапсырыс мәртебесі өзгерді"},
	keyOrderStatusBody:   {"«%s»: %s", "«%s»: %s"},
	keyNewMessageTitle:   {"Новое сообщение от %s", "%s жаңа хабарлама жіберді"},
	keyNotificationTitle: {"Уведомление", "Хабарландыру"},
	keyBroadcastTitle:    {"Объявление", "Маңызды хабарлама"},
	keyUntitled:          {"без названия", "атауы жоқ"},

	keyBidStatusPrefix + string(domain.BidPending):   {"ожидает ответа", "жауап күтуде"},
	keyBidStatusPrefix + string(domain.BidAccepted):  {"принята", "қабылданды"},
	keyBidStatusPrefix + string(domain.BidRejected):  {"отклонена", "қабылданбады"},
	keyBidStatusPrefix + string(domain.BidWithdrawn): {"отозвана", "кері қайтарылды"},
	keyBidStatusPrefix + string(domain.BidCompleted): {"завершена", "аяқталды"},
}

var texts = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Russian))
	for key, msgs := range entries {
		for i, tag := range supported {
			// entries are static, SetString only fails on a malformed tag
			_ = b.SetString(tag, key, msgs[i])
		}
	}
	return b
}

// MatchLocale maps a requested locale to a supported language tag, Russian by default
func MatchLocale(locale domain.Locale) language.Tag {
	_, idx, conf := matcher.Match(language.Make(string(locale)))
	if conf == language.No {
		return language.Russian
	}
	return supported[idx]
}

// NewPrinter returns a printer for locale backed by the toast catalog
func NewPrinter(locale domain.Locale) *message.Printer {
	return message.NewPrinter(MatchLocale(locale), message.Catalog(texts))
}
