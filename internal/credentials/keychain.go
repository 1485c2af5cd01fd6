package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Lookup retrieves the secret for a backend from the platform secret store.
// On macOS it queries the system keychain (service "zsh-ai-cmd-<backend>");
// on other platforms it reads the credentials file. The lookup has no side
// effects.
func Lookup(backend string) (string, error) {
	if runtime.GOOS == "darwin" {
		return fromMacKeychain(backend)
	}
	return fromCredentialsFile(backend)
}

func fromMacKeychain(backend string) (string, error) {
	user := os.Getenv("USER")
	if user == "" {
		return "", fmt.Errorf("USER environment variable not set")
	}

	cmd := exec.Command("security", "find-generic-password",
		"-s", "zsh-ai-cmd-"+backend,
		"-a", user,
		"-w")

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("no keychain entry for %s: %w", backend, err)
	}

	return trimSecret(string(output)), nil
}

// CredentialsFile returns the path of the JSON credentials file used on
// platforms without a keychain: a flat object mapping backend name to secret.
func CredentialsFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "zsh-ai-cmd", "credentials.json"), nil
}

func fromCredentialsFile(backend string) (string, error) {
	path, err := CredentialsFile()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	secret, err := parseCredentialsFile(data, backend)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return secret, nil
}

func parseCredentialsFile(data []byte, backend string) (string, error) {
	var creds map[string]string
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("failed to parse credentials: %w", err)
	}

	secret := trimSecret(creds[backend])
	if secret == "" {
		return "", fmt.Errorf("no credential stored for %s", backend)
	}
	return secret, nil
}

// Store writes the secret for a backend. On macOS it adds a keychain entry;
// elsewhere it updates the credentials file with 0600 permissions.
func Store(backend, secret string) error {
	if runtime.GOOS == "darwin" {
		return toMacKeychain(backend, secret)
	}
	return toCredentialsFile(backend, secret)
}

func toMacKeychain(backend, secret string) error {
	user := os.Getenv("USER")
	if user == "" {
		return fmt.Errorf("USER environment variable not set")
	}

	// -U replaces an existing entry instead of failing.
	cmd := exec.Command("security", "add-generic-password",
		"-s", "zsh-ai-cmd-"+backend,
		"-a", user,
		"-w", secret,
		"-U")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to write keychain entry for %s: %w", backend, err)
	}
	return nil
}

func toCredentialsFile(backend, secret string) error {
	path, err := CredentialsFile()
	if err != nil {
		return err
	}

	creds := map[string]string{}
	if data, err := os.ReadFile(path); err == nil {
		// Corrupt files are replaced rather than propagated.
		_ = json.Unmarshal(data, &creds)
	}
	creds[backend] = secret

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func trimSecret(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r' || s[len(s)-1] == ' ') {
		s = s[:len(s)-1]
	}
	return s
}
