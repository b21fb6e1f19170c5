package resources

import (
	"embed"
	"fmt"
	"path"
	"sync"

	"fyne.io/fyne/v2"
)

// Bundled asset names.
const (
	LogoActive = "tomato_active.png"
	LogoPaused = "tomato_paused.png"
	Chime      = "chime.wav"
)

//go:embed logo/*.png sounds/*.wav
var assetFS embed.FS

var cache sync.Map

// Logo returns a Fyne resource for the given logo file.
func Logo(fileName string) (fyne.Resource, error) {
	return load(path.Join("logo", fileName))
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// StateIcon returns the tray and window icon for a running or paused timer.
func StateIcon(running bool) fyne.Resource {
	if running {
		return MustLogo(LogoActive)
	}
	return MustLogo(LogoPaused)
}

// Sound returns a Fyne resource for the given sound clip.
func Sound(fileName string) (fyne.Resource, error) {
	return load(path.Join("sounds", fileName))
}

func load(assetPath string) (fyne.Resource, error) {
	if cached, ok := cache.Load(assetPath); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := assetFS.ReadFile(assetPath)
	if err != nil {
		return nil, fmt.Errorf("load asset %s: %w", assetPath, err)
	}

	resource := fyne.NewStaticResource(path.Base(assetPath), data)
	actual, _ := cache.LoadOrStore(assetPath, resource)
	return actual.(fyne.Resource), nil
}
