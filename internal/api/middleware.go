package api

const (
	sessionCookieName  = "rangepicker_session"
	languageCookieName = "rangepicker_lang"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
)
