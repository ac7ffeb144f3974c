package llm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bytedance/sonic"
)

// ErrTokenNotFound is returned when no GitHub credential can be located.
var ErrTokenNotFound = errors.New("GitHub token not found: set GITHUB_TOKEN or sign in to GitHub Copilot in your editor")

// LoadGitHubToken returns the GitHub OAuth token from GITHUB_TOKEN, or from the
// Copilot hosts.json / apps.json files under the user config directory.
func LoadGitHubToken() (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	configDir, err := copilotConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting config directory: %w", err)
	}
	return tokenFromDir(filepath.Join(configDir, "github-copilot"))
}

func tokenFromDir(dir string) (string, error) {
	for _, name := range []string{"hosts.json", "apps.json"} {
		token, err := tokenFromFile(filepath.Join(dir, name))
		if err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrTokenNotFound
}

func copilotConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if runtime.GOOS == "windows" {
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return local, nil
		}
		return filepath.Join(home, "AppData", "Local"), nil
	}
	return filepath.Join(home, ".config"), nil
}

// tokenFromFile extracts the oauth_token of the first github.com entry.
func tokenFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var hosts map[string]struct {
		OAuthToken string `json:"oauth_token"`
	}
	if err := sonic.Unmarshal(data, &hosts); err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	for host, entry := range hosts {
		if strings.Contains(host, "github.com") && entry.OAuthToken != "" {
			return entry.OAuthToken, nil
		}
	}
	return "", fmt.Errorf("oauth_token not found in %s", path)
}
