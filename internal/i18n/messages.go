// Package i18n holds the launcher's console messages in Russian and English.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Key identifies a console message.
type Key string

const (
	MsgTitle             Key = "title"
	MsgCheckEnv          Key = "check_env"
	MsgCreateEnv         Key = "create_env"
	MsgEnvCreated        Key = "env_created"
	MsgEnvExists         Key = "env_exists"
	MsgActivateEnv       Key = "activate_env"
	MsgCheckManifest     Key = "check_manifest"
	MsgInstallDeps       Key = "install_deps"
	MsgRunProgram        Key = "run_program"
	MsgProgramExit       Key = "program_exit"
	MsgDone              Key = "done"
	MsgPressAnyKey       Key = "press_any_key"
	MsgInterrupted       Key = "interrupted"
	MsgConfigError       Key = "config_error"
	MsgErrorLabel        Key = "error_label"
	MsgErrCreateEnv      Key = "err_create_env"
	MsgErrActivateEnv    Key = "err_activate_env"
	MsgErrManifest       Key = "err_manifest"
	MsgErrInstallDeps    Key = "err_install_deps"
	MsgErrUnexpected     Key = "err_unexpected"
	MsgPlanTitle         Key = "plan_title"
	MsgPlanSkip          Key = "plan_skip"
	MsgPlanBlocked       Key = "plan_blocked"
	MsgStepCheckEnv      Key = "step_check_env"
	MsgStepCreateEnv     Key = "step_create_env"
	MsgStepActivateEnv   Key = "step_activate_env"
	MsgStepCheckManifest Key = "step_check_manifest"
	MsgStepInstallDeps   Key = "step_install_deps"
	MsgStepRunProgram    Key = "step_run_program"
)

var supported = []language.Tag{language.Russian, language.English}

var matcher = language.NewMatcher(supported)

var catalogs = map[language.Tag]map[Key]string{
	language.Russian: {
		MsgTitle:             "ЗАПУСК ПРОГРАММЫ",
		MsgCheckEnv:          "Проверка виртуального окружения...",
		MsgCreateEnv:         "Виртуальное окружение не найдено. Создание %s...",
		MsgEnvCreated:        "Виртуальное окружение создано.",
		MsgEnvExists:         "Виртуальное окружение найдено: %s",
		MsgActivateEnv:       "Активация виртуального окружения...",
		MsgCheckManifest:     "Проверка файла зависимостей %s...",
		MsgInstallDeps:       "Установка зависимостей...",
		MsgRunProgram:        "Запуск программы %s...",
		MsgProgramExit:       "Программа завершилась с кодом %d.",
		MsgDone:              "Работа завершена.",
		MsgPressAnyKey:       "Нажмите любую клавишу для выхода...",
		MsgInterrupted:       "Работа прервана пользователем.",
		MsgConfigError:       "Ошибка конфигурации: %v",
		MsgErrorLabel:        "[ОШИБКА]",
		MsgErrCreateEnv:      "Не удалось создать виртуальное окружение.",
		MsgErrActivateEnv:    "Не удалось активировать виртуальное окружение.",
		MsgErrManifest:       "Файл %s не найден.",
		MsgErrInstallDeps:    "Не удалось установить зависимости.",
		MsgErrUnexpected:     "Непредвиденная ошибка: %v",
		MsgPlanTitle:         "План запуска",
		MsgPlanSkip:          "пропускается",
		MsgPlanBlocked:       "остановится здесь",
		MsgStepCheckEnv:      "Проверка виртуального окружения",
		MsgStepCreateEnv:     "Создание виртуального окружения",
		MsgStepActivateEnv:   "Активация виртуального окружения",
		MsgStepCheckManifest: "Проверка файла зависимостей",
		MsgStepInstallDeps:   "Установка зависимостей",
		MsgStepRunProgram:    "Запуск программы",
	},
	language.English: {
		MsgTitle:             "LAUNCHING PROGRAM",
		MsgCheckEnv:          "Checking virtual environment...",
		MsgCreateEnv:         "Virtual environment not found. Creating %s...",
		MsgEnvCreated:        "Virtual environment created.",
		MsgEnvExists:         "Virtual environment found: %s",
		MsgActivateEnv:       "Activating virtual environment...",
		MsgCheckManifest:     "Checking dependency file %s...",
		MsgInstallDeps:       "Installing dependencies...",
		MsgRunProgram:        "Starting %s...",
		MsgProgramExit:       "Program exited with code %d.",
		MsgDone:              "Done.",
		MsgPressAnyKey:       "Press any key to exit...",
		MsgInterrupted:       "Interrupted by user.",
		MsgConfigError:       "Configuration error: %v",
		MsgErrorLabel:        "[ERROR]",
		MsgErrCreateEnv:      "Failed to create the virtual environment.",
		MsgErrActivateEnv:    "Failed to activate the virtual environment.",
		MsgErrManifest:       "%s not found.",
		MsgErrInstallDeps:    "Failed to install dependencies.",
		MsgErrUnexpected:     "Unexpected error: %v",
		MsgPlanTitle:         "Launch plan",
		MsgPlanSkip:          "skipped",
		MsgPlanBlocked:       "stops here",
		MsgStepCheckEnv:      "Check virtual environment",
		MsgStepCreateEnv:     "Create virtual environment",
		MsgStepActivateEnv:   "Activate virtual environment",
		MsgStepCheckManifest: "Check dependency file",
		MsgStepInstallDeps:   "Install dependencies",
		MsgStepRunProgram:    "Run program",
	},
}

// Catalog renders messages in one language.
type Catalog struct {
	Tag      language.Tag
	messages map[Key]string
}

// New returns the catalog for tag, falling back to Russian.
func New(tag language.Tag) Catalog {
	_, idx, conf := matcher.Match(tag)
	t := supported[idx]
	if conf == language.No {
		t = language.Russian
	}
	return Catalog{Tag: t, messages: catalogs[t]}
}

// Select picks the catalog for an explicit language, or from LC_ALL, LC_MESSAGES
// and LANG in environ, in that order. Unknown or missing values select Russian.
func Select(lang string, environ []string) Catalog {
	if lang != "" {
		return New(parse(lang))
	}
	env := map[string]string{}
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	for _, k := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := env[k]; v != "" {
			return New(parse(v))
		}
	}
	return New(language.Russian)
}

// T formats the message for key.
func (c Catalog) T(key Key, args ...any) string {
	msg, ok := c.messages[key]
	if !ok {
		return string(key)
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// parse accepts BCP 47 tags and POSIX locales such as en_US.UTF-8.
func parse(s string) language.Tag {
	s, _, _ = strings.Cut(s, ".")
	s, _, _ = strings.Cut(s, "@")
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}
