package token

var keywords map[string]Kind

func init() {
	keywords = make(map[string]Kind, int(keywordEnd-keywordBeg))
	for k := keywordBeg + 1; k < keywordEnd; k++ {
		keywords[kindText[k]] = k
	}
}

// LookupKeyword возвращает вид ключевого слова. Регистр важен: `Self` и `self` различаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
