package constants

import "os"

// Права на создаваемые каталоги и файлы.
const (
	// DirPermStandard - каталог логов (владелец rwx, группа r-x).
	DirPermStandard os.FileMode = 0750
	// FilePermReadWrite - новый файл списка баз (владелец rw, остальные r).
	FilePermReadWrite os.FileMode = 0644
)
