package cli

import (
	"fmt"
	"os"

	"github.com/roach88/stagehand/internal/scene"
	"github.com/roach88/stagehand/internal/sceneio"
)

// loadSceneFile reads a scene file and materializes a checked graph.
func loadSceneFile(path string) (*scene.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return sceneio.LoadScene(string(data))
}
