package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional values to embed in the message (for example,
// "key", "value" or "accepted").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			tmpl = "{key} の値 '{value}' を {expected} に変換できません"
		case "required":
			tmpl = "必須フィールド {key} がありません"
		case "invalid_enum":
			tmpl = "{kind} '{value}' は未対応です。対応値: {accepted}"
		case "unknown_key":
			tmpl = "未使用のキーがあります: {keys}"
		case "duplicate_key":
			tmpl = "キーが重複しています"
		case "parse_error":
			tmpl = "解析エラー"
		case "invalid_config":
			tmpl = "設定が不正です"
		case "missing_reference":
			tmpl = "参照先が見つかりません"
		case "ambiguous_pivot":
			tmpl = "ピボット列に複数の値があります"
		case "not_single_valued":
			tmpl = "メタデータ列に複数の値があります"
		case "too_big":
			tmpl = "行数が上限を超えました"
		case "not_comparable":
			tmpl = "値を比較できません"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			tmpl = "unable to convert '{value}' at {key} to {expected}"
		case "required":
			tmpl = "expected non-null value for {key}"
		case "invalid_enum":
			tmpl = "unrecognized {kind}: '{value}'. Only {accepted} are supported"
		case "unknown_key":
			tmpl = "unused keys: {keys}"
		case "duplicate_key":
			tmpl = "duplicate key"
		case "parse_error":
			tmpl = "parse error"
		case "invalid_config":
			tmpl = "invalid mapper config"
		case "missing_reference":
			tmpl = "missing reference"
		case "ambiguous_pivot":
			tmpl = "pivot column has more than one value"
		case "not_single_valued":
			tmpl = "metadata column has more than one value"
		case "too_big":
			tmpl = "row limit exceeded"
		case "not_comparable":
			tmpl = "value cannot be compared"
		}
	}
	if tmpl == "" {
		return code
	}
	return fill(tmpl, data)
}

func fill(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
