package turkishsearch

import "strings"

// Türkçe karakterleri ASCII karşılığına indirger; hem arama terimi (Go tarafı)
// hem sütun (SQL translate) aynı indirgemeden geçer ki "Sağlık" araması
// "saglik" yazan kullanıcıyı da bulsun.
const (
	turkishChars = "çğıöşüÇĞİÖŞÜ"
	asciiChars   = "cgiosucgiosu"
)

var normalizer = func() *strings.Replacer {
	pairs := make([]string, 0, len([]rune(turkishChars))*2)
	ascii := []rune(asciiChars)
	for i, r := range []rune(turkishChars) {
		pairs = append(pairs, string(r), string(ascii[i]))
	}
	return strings.NewReplacer(pairs...)
}()

// Normalize terimi küçük harfe çevirip Türkçe karakterleri sadeleştirir.
// Go'nun ToLower'ı "İ"yi 'i' + birleşik nokta (U+0307) olarak indirger ve
// replacer bu diziyi yakalayamaz; noktalı büyük İ bu yüzden önce açıkça
// katlanır, artakalan birleşik nokta da atılır.
func Normalize(term string) string {
	term = strings.ReplaceAll(term, "İ", "i")
	term = strings.ToLower(term)
	term = strings.ReplaceAll(term, "\u0307", "")
	return normalizer.Replace(term)
}

// SQLFilter verilen sütun için aksan duyarsız ILIKE fragment'ı ve
// argümanlarını döndürür. GORM Where ile doğrudan kullanılır:
//
//	frag, args := turkishsearch.SQLFilter("users.name", term)
//	query = query.Where(frag, args...)
func SQLFilter(column, term string) (string, []interface{}) {
	fragment := "translate(lower(" + column + "), '" + turkishChars + "', '" + asciiChars + "') LIKE ?"
	return fragment, []interface{}{"%" + Normalize(term) + "%"}
}
