package display

import "laser-trainer/internal/domain/scene"

const keyEscape = 27

// commandForKey переводит код клавиши окна в команду: c/C переключает превью, ESC завершает работу.
func commandForKey(key int) scene.Command {
	switch key {
	case keyEscape:
		return scene.CommandQuit
	case 'c', 'C':
		return scene.CommandTogglePreview
	}
	return scene.CommandNone
}
