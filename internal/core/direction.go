package core

// Compass is the 8-direction movement set used by the coverage robot.
var Compass = [8]Dir{
	{0, 1}, {1, 0}, {0, -1}, {1, -1},
	{-1, -1}, {-1, 0}, {-1, 1}, {1, 1},
}

// The three reflection tables remap a robot's direction after a bounce.
// Each is a fixed deflection keyed by the compass directions.
var (
	// ReflectUpperLeft deflects toward the upper-left, the default
	// bounce behavior.
	ReflectUpperLeft = map[Dir]Dir{
		{1, 0}: {1, 1}, {1, -1}: {1, 0}, {0, -1}: {1, -1}, {-1, -1}: {0, -1},
		{-1, 0}: {-1, -1}, {-1, 1}: {-1, 0}, {0, 1}: {-1, 1}, {1, 1}: {0, 1},
	}

	// ReflectLeft deflects leftward.
	ReflectLeft = map[Dir]Dir{
		{1, 0}: {0, 1}, {1, -1}: {-1, -1}, {0, -1}: {-1, 0}, {-1, -1}: {0, -1},
		{-1, 0}: {-1, -1}, {-1, 1}: {1, 0}, {0, 1}: {1, 0}, {1, 1}: {0, 1},
	}

	// ReflectRight deflects rightward.
	ReflectRight = map[Dir]Dir{
		{1, 0}: {0, -1}, {1, -1}: {-1, -1}, {0, -1}: {-1, 0}, {-1, -1}: {-1, 1},
		{-1, 0}: {0, 1}, {-1, 1}: {1, 1}, {0, 1}: {1, 0}, {1, 1}: {1, -1},
	}
)
