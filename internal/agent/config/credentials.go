// Package config содержит функции для работы с локальной конфигурацией CLI-клиента.
//
// Конфигурация хранит access-токен и данные вошедшего пользователя
// в домашней директории пользователя в файле:
//
//	~/.usersctl/credentials.json
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// ErrNotLoggedIn — в локальной конфигурации нет access-токена.
var ErrNotLoggedIn = errors.New("not logged in: run `usersctl login` first")

// Credentials содержит учётные данные, используемые CLI-клиентом.
type Credentials struct {
	// ServerURL — сервер, на котором был выполнен вход.
	ServerURL string `json:"server_url,omitempty"`
	// AccessToken применяется для авторизации запросов к серверу.
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Token возвращает access-токен или ErrNotLoggedIn.
func (c *Credentials) Token() (string, error) {
	if c == nil || c.AccessToken == "" {
		return "", ErrNotLoggedIn
	}
	return c.AccessToken, nil
}

// DefaultPath возвращает путь <home>/.usersctl/credentials.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".usersctl", "credentials.json"), nil
}

// Load загружает конфигурацию из указанного файла.
//
// Если файл не существует, возвращает пустую конфигурацию без ошибки.
// Если файл существует, но содержит некорректный JSON, возвращает ошибку.
func Load(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, err
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save сохраняет конфигурацию в JSON.
// Директория создаётся с правами 0700, файл пишется с правами 0600.
func Save(path string, c *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// Remove удаляет файл конфигурации. Отсутствие файла — не ошибка.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
