// meta/meta.go
package meta

// ACTIONS_PER_TURN is the action budget a player starts each turn with.
const ACTIONS_PER_TURN = 4

// HAND_LIMIT is the number of cards a player may hold once the draw completes.
const HAND_LIMIT = 7

// CUBES_PER_COLOR is the starting supply of each disease.
const CUBES_PER_COLOR = 24

// MAX_CUBES_PER_CITY caps the cubes of one color in a city, a 4th one outbreaks.
const MAX_CUBES_PER_CITY = 3

// MAX_OUTBREAKS ends the game.
const MAX_OUTBREAKS = 8

// MAX_RESEARCH_STATIONS on the board at once.
const MAX_RESEARCH_STATIONS = 6

// MAX_INFECTION_RATE_POSITION is the last slot of the infection rate track.
const MAX_INFECTION_RATE_POSITION = 7

// CURE_CARDS needed to discover a cure (the Scientist needs one less).
const CURE_CARDS = 5

// CARDS_PER_DRAW is the number of player cards drawn during the Draw phase.
const CARDS_PER_DRAW = 2

// FORECAST_DEPTH is how many infection cards Forecast rearranges.
const FORECAST_DEPTH = 6

// START_CITY hosts the first research station and every pawn at setup.
const START_CITY = "Atlanta"
