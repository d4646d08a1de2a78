package ui

import (
	"strings"

	"fyne.io/fyne/v2/lang"

	"github.com/ytget/remote-downloader/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyDownload           = "download"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyURLLabel           = "url_label"
	KeyEnterURL           = "enter_url"
	KeyQuality            = "quality"
	KeyAPIBaseURL         = "api_base_url"
	KeyRequestTimeout     = "request_timeout"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeySettingsSaved      = "settings_saved"
	KeyInvalidAPIURL      = "invalid_api_url"
	KeyInvalidTimeout     = "invalid_timeout"
	KeySupportedSites     = "supported_sites"
	KeyLoadingSites       = "loading_sites"
	KeySitesUnavailable   = "sites_unavailable"
	KeyHistory            = "history"
	KeyClearHistory       = "clear_history"
	KeyNoHistory          = "no_history"
	KeyUnknown            = "unknown"
	KeyViews              = "views"
	KeyUploaded           = "uploaded"
	KeyStatusSupported    = "status_supported"
	KeyStatusUnsupported  = "status_unsupported"
	KeyStatusVerifyFailed = "status_verify_failed"
	KeyStatusSubmitting   = "status_submitting"
	KeyErrorPrefix        = "error_prefix"
	KeyUnknownError       = "unknown_error"
	KeyDownloadCompleted  = "download_completed"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(code string) {
	if code == "system" {
		code = systemLanguage()
	}

	if _, exists := l.texts[code]; exists {
		l.currentLanguage = code
	}
}

// systemLanguage returns the two-letter code of the OS locale, or "en".
func systemLanguage() string {
	locale := string(lang.SystemLocale())
	if locale == "" {
		return "en"
	}
	code, _, _ := strings.Cut(strings.ToLower(strings.ReplaceAll(locale, "_", "-")), "-")
	return code
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// StatusText renders a status line in the current language. Backend messages
// are shown as received.
func (l *Localization) StatusText(status model.Status) string {
	switch status.Kind {
	case model.StatusSupported:
		return l.GetText(KeyStatusSupported)
	case model.StatusUnsupported:
		return l.GetText(KeyStatusUnsupported)
	case model.StatusVerifyFailed:
		return l.GetText(KeyStatusVerifyFailed)
	case model.StatusSubmitting:
		return l.GetText(KeyStatusSubmitting)
	case model.StatusDownloadFailed:
		text := status.Text
		if text == "" {
			text = l.GetText(KeyUnknownError)
		}
		return l.GetText(KeyErrorPrefix) + ": " + text
	default:
		return status.Text
	}
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"es": "Español",
		"ru": "Русский",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "Universal Video Downloader",
		KeyDownload:           "Download",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyURLLabel:           "Video URL",
		KeyEnterURL:           "Paste the video URL here (YouTube, Vimeo, TikTok, etc.)",
		KeyQuality:            "Video quality (MP4)",
		KeyAPIBaseURL:         "Backend URL",
		KeyRequestTimeout:     "Request timeout (seconds)",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyInvalidAPIURL:      "The backend URL must start with http:// or https://",
		KeyInvalidTimeout:     "The timeout must be a whole number of seconds",
		KeySupportedSites:     "Supported sites",
		KeyLoadingSites:       "Loading supported sites...",
		KeySitesUnavailable:   "The list of supported sites is not available",
		KeyHistory:            "Recent downloads",
		KeyClearHistory:       "Clear finished",
		KeyNoHistory:          "No downloads yet",
		KeyUnknown:            "Unknown",
		KeyViews:              "views",
		KeyUploaded:           "uploaded",
		KeyStatusSupported:    "URL supported - video found",
		KeyStatusUnsupported:  "URL not supported",
		KeyStatusVerifyFailed: "Could not verify the URL",
		KeyStatusSubmitting:   "Sending download request...",
		KeyErrorPrefix:        "Error",
		KeyUnknownError:       "unknown error",
		KeyDownloadCompleted:  "Download completed",
	}

	l.texts["es"] = map[string]string{
		KeyAppTitle:           "Descargador Universal de Videos",
		KeyDownload:           "Descargar",
		KeySettings:           "Configuración",
		KeyFile:               "Archivo",
		KeyLanguage:           "Idioma",
		KeyURLLabel:           "URL del Video",
		KeyEnterURL:           "Pega aquí la URL del video (YouTube, Vimeo, TikTok, etc.)",
		KeyQuality:            "Calidad del Video (MP4)",
		KeyAPIBaseURL:         "URL del servidor",
		KeyRequestTimeout:     "Tiempo de espera (segundos)",
		KeySave:               "Guardar",
		KeyCancel:             "Cancelar",
		KeySettingsSaved:      "¡Configuración guardada!",
		KeyInvalidAPIURL:      "La URL del servidor debe empezar con http:// o https://",
		KeyInvalidTimeout:     "El tiempo de espera debe ser un número entero de segundos",
		KeySupportedSites:     "Sitios soportados",
		KeyLoadingSites:       "Cargando sitios soportados...",
		KeySitesUnavailable:   "La lista de sitios soportados no está disponible",
		KeyHistory:            "Descargas recientes",
		KeyClearHistory:       "Limpiar terminadas",
		KeyNoHistory:          "Aún no hay descargas",
		KeyUnknown:            "Desconocida",
		KeyViews:              "vistas",
		KeyUploaded:           "publicado",
		KeyStatusSupported:    "URL soportada - Video encontrado",
		KeyStatusUnsupported:  "URL no soportada",
		KeyStatusVerifyFailed: "No se pudo verificar la URL",
		KeyStatusSubmitting:   "Enviando solicitud de descarga...",
		KeyErrorPrefix:        "Error",
		KeyUnknownError:       "Error desconocido",
		KeyDownloadCompleted:  "Descarga completada",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Универсальный загрузчик видео",
		KeyDownload:           "Скачать",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyURLLabel:           "URL видео",
		KeyEnterURL:           "Вставьте URL видео (YouTube, Vimeo, TikTok и др.)",
		KeyQuality:            "Качество видео (MP4)",
		KeyAPIBaseURL:         "Адрес сервера",
		KeyRequestTimeout:     "Тайм-аут запроса (секунды)",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyInvalidAPIURL:      "Адрес сервера должен начинаться с http:// или https://",
		KeyInvalidTimeout:     "Тайм-аут должен быть целым числом секунд",
		KeySupportedSites:     "Поддерживаемые сайты",
		KeyLoadingSites:       "Загрузка списка сайтов...",
		KeySitesUnavailable:   "Список поддерживаемых сайтов недоступен",
		KeyHistory:            "Последние загрузки",
		KeyClearHistory:       "Очистить завершённые",
		KeyNoHistory:          "Загрузок пока нет",
		KeyUnknown:            "Неизвестно",
		KeyViews:              "просмотров",
		KeyUploaded:           "опубликовано",
		KeyStatusSupported:    "URL поддерживается - видео найдено",
		KeyStatusUnsupported:  "URL не поддерживается",
		KeyStatusVerifyFailed: "Не удалось проверить URL",
		KeyStatusSubmitting:   "Отправка запроса на загрузку...",
		KeyErrorPrefix:        "Ошибка",
		KeyUnknownError:       "неизвестная ошибка",
		KeyDownloadCompleted:  "Загрузка завершена",
	}
}
