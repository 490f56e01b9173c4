package server

func (s *Server) buildHandlers() map[string]handlerFunc {
	return map[string]handlerFunc{
		"ls":             handleLs,
		"metadata":       handleMetadata,
		"select":         handleSelect,
		"update":         handleUpdate,
		"volume":         handleVolume,
		"seek":           handleSeek,
		"speed":          handleSpeed,
		"gapless":        handleGapless,
		"pause":          handlePause,
		"resume":         handleResume,
		"toggle":         handleToggle,
		"stop":           handleStop,
		"addqueue":       handleAddQueue,
		"play":           handlePlay,
		"removequeue":    handleRemoveQueue,
		"clearqueue":     handleClearQueue,
		"next":           handleNext,
		"previous":       handlePrevious,
		"modesingle":     handleModeSingle,
		"moderandom":     handleModeRandom,
		"modesequential": handleModeSequential,
		"state":          handleState,
		"disable":        handleDisable,
		"enable":         handleEnable,
		"addplaylist":    handleAddPlaylist,
		"listsongs":      handleListSongs,
		"load":           handleLoad,
		"removeplaylist": handleRemovePlaylist,
		"save":           handleSave,
	}
}
