// fen.go parses and formats Forsyth-Edwards Notation, the board exchange
// format UCI's `position fen ...` command uses.

package engine

import (
	"fmt"
	"strconv"
	"strings"
)

var fenPieceSymbol = map[byte]Piece{
	'P': ColorFigure(White, Pawn), 'N': ColorFigure(White, Knight),
	'B': ColorFigure(White, Bishop), 'R': ColorFigure(White, Rook),
	'Q': ColorFigure(White, Queen), 'K': ColorFigure(White, King),
	'p': ColorFigure(Black, Pawn), 'n': ColorFigure(Black, Knight),
	'b': ColorFigure(Black, Bishop), 'r': ColorFigure(Black, Rook),
	'q': ColorFigure(Black, Queen), 'k': ColorFigure(Black, King),
}

var pieceSymbolByColor = map[Piece]byte{}

func init() {
	for sym, pi := range fenPieceSymbol {
		pieceSymbolByColor[pi] = sym
	}
}

// PositionFromFEN parses a FEN string into a fresh Position.
func PositionFromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("engine: FEN %q has too few fields", fen)
	}

	pos := NewPosition()
	if err := parsePlacement(pos, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("engine: FEN %q has invalid side to move %q", fen, fields[1])
	}

	castle, err := parseCastlingAbility(fields[2])
	if err != nil {
		return nil, err
	}
	pos.CastlingAbility = castle

	ep, err := parseEnpassantSquare(fields[3])
	if err != nil {
		return nil, err
	}
	pos.EnpassantSquare = ep

	pos.HalfmoveClock = 0
	pos.FullMoveNumber = 1
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			pos.HalfmoveClock = n
		}
	}
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			pos.FullMoveNumber = n
		}
	}

	// Piece placement was folded into pos.Zobrist by put() as each piece was
	// placed; the remaining components (castling rights, en-passant file,
	// side to move) are folded in once here.
	pos.Zobrist ^= zobristCastle[pos.CastlingAbility]
	if pos.EnpassantSquare != SquareNone {
		pos.Zobrist ^= zobristEnpassant[pos.EnpassantSquare]
	}
	if pos.SideToMove == Black {
		pos.Zobrist ^= zobristColor
	}
	pos.history = append(pos.history, pos.Zobrist)
	return pos, nil
}

func parsePlacement(pos *Position, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("engine: piece placement %q does not have 8 ranks", field)
	}
	for i, rankField := range ranks {
		r := 7 - i
		f := 0
		for j := 0; j < len(rankField); j++ {
			c := rankField[j]
			if c >= '1' && c <= '8' {
				f += int(c - '0')
				continue
			}
			pi, ok := fenPieceSymbol[c]
			if !ok {
				return fmt.Errorf("engine: piece placement %q has invalid symbol %q", field, c)
			}
			if f >= 8 {
				return fmt.Errorf("engine: piece placement %q has too many files on rank %d", field, r+1)
			}
			pos.PlacePiece(RankFile(r, f), pi)
			f++
		}
		if f != 8 {
			return fmt.Errorf("engine: piece placement %q rank %d does not sum to 8 files", field, r+1)
		}
	}
	return nil
}

func parseCastlingAbility(field string) (Castle, error) {
	if field == "-" {
		return NoCastle, nil
	}
	var c Castle
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case 'K':
			c |= WhiteOO
		case 'Q':
			c |= WhiteOOO
		case 'k':
			c |= BlackOO
		case 'q':
			c |= BlackOOO
		default:
			return NoCastle, fmt.Errorf("engine: invalid castling field %q", field)
		}
	}
	return c, nil
}

func parseEnpassantSquare(field string) (Square, error) {
	if field == "-" {
		return SquareNone, nil
	}
	return SquareFromString(field)
}

// FEN formats pos back into Forsyth-Edwards Notation.
func (pos *Position) FEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pi := pos.Get(RankFile(r, f))
			if pi == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceSymbolByColor[pi])
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if pos.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(pos.CastlingAbility.String())

	sb.WriteByte(' ')
	if pos.EnpassantSquare == SquareNone {
		sb.WriteByte('-')
	} else {
		sb.WriteString(pos.EnpassantSquare.String())
	}

	fmt.Fprintf(&sb, " %d %d", pos.HalfmoveClock, pos.FullMoveNumber)
	return sb.String()
}
