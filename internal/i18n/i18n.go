package i18n

import (
	"desktopcleaner/internal/category"
	"desktopcleaner/internal/settings"
)

type Texts struct {
	FilesOnDesktop    string
	TotalSize         string
	CleanlinessScore  string
	ErrorFallback     string
	BridgeUnavailable string
	ProfileFailed     string
	NoWeeklyData      string
	CatImages         string
	CatDocs           string
	CatArchives       string
	CatOther          string
	WeekDaysShort     [7]string
	ViewHome          string
	ViewSettings      string
	ViewStats         string
	ViewTrash         string
	ViewProfile       string
	ScanRunning       string
	ScanDone          string
}

var table = map[settings.Lang]Texts{
	settings.LangUK: {
		FilesOnDesktop:    "Файлів на робочому столі",
		TotalSize:         "Загальний розмір",
		CleanlinessScore:  "Чистота",
		ErrorFallback:     "Не вдалося завантажити дані.",
		BridgeUnavailable: "Desktop bridge is not available",
		ProfileFailed:     "Failed to load profile summary",
		NoWeeklyData:      "Ще немає даних",
		CatImages:         "Зображення",
		CatDocs:           "Документи",
		CatArchives:       "Архіви",
		CatOther:          "Інше",
		WeekDaysShort:     [7]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Нд"},
		ViewHome:          "Головна",
		ViewSettings:      "Налаштування",
		ViewStats:         "Статистика",
		ViewTrash:         "Кошик",
		ViewProfile:       "Профіль",
		ScanRunning:       "Сканування...",
		ScanDone:          "Сканування завершено",
	},
	settings.LangEN: {
		FilesOnDesktop:    "Files on desktop",
		TotalSize:         "Total size",
		CleanlinessScore:  "Cleanliness",
		ErrorFallback:     "Failed to load data.",
		BridgeUnavailable: "Desktop bridge is not available",
		ProfileFailed:     "Failed to load profile summary",
		NoWeeklyData:      "No data yet",
		CatImages:         "Images",
		CatDocs:           "Documents",
		CatArchives:       "Archives",
		CatOther:          "Other",
		WeekDaysShort:     [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		ViewHome:          "Home",
		ViewSettings:      "Settings",
		ViewStats:         "Statistics",
		ViewTrash:         "Trash",
		ViewProfile:       "Profile",
		ScanRunning:       "Scanning...",
		ScanDone:          "Scan complete",
	},
	settings.LangRU: {
		FilesOnDesktop:    "Файлов на рабочем столе",
		TotalSize:         "Общий размер",
		CleanlinessScore:  "Чистота",
		ErrorFallback:     "Не удалось загрузить данные.",
		BridgeUnavailable: "Desktop bridge is not available",
		ProfileFailed:     "Failed to load profile summary",
		NoWeeklyData:      "Пока нет данных",
		CatImages:         "Изображения",
		CatDocs:           "Документы",
		CatArchives:       "Архивы",
		CatOther:          "Другое",
		WeekDaysShort:     [7]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"},
		ViewHome:          "Главная",
		ViewSettings:      "Настройки",
		ViewStats:         "Статистика",
		ViewTrash:         "Корзина",
		ViewProfile:       "Профиль",
		ScanRunning:       "Сканирование...",
		ScanDone:          "Сканирование завершено",
	},
}

// For returns the texts of lang, falling back to Ukrainian.
func For(lang settings.Lang) Texts {
	if t, ok := table[lang]; ok {
		return t
	}
	return table[settings.LangUK]
}

// Bucket is the localized name of a category bucket.
func (t Texts) Bucket(b category.Bucket) string {
	switch b {
	case category.Images:
		return t.CatImages
	case category.Documents:
		return t.CatDocs
	case category.Archives:
		return t.CatArchives
	default:
		return t.CatOther
	}
}

// WeekDay returns the short name for a Monday-based day index.
func (t Texts) WeekDay(dayIndex int) string {
	if dayIndex < 0 || dayIndex >= len(t.WeekDaysShort) {
		return "-"
	}
	return t.WeekDaysShort[dayIndex]
}
