package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopmate/backend/internal/domain"
)

// promptProductLimit is how many results are quoted in the sales prompt
const promptProductLimit = 5

// BuildProductPrompt builds the Hebrew sales-assistant prompt for a multi-store search
func BuildProductPrompt(query string, results []domain.SearchResult, totalStores int) string {
	if totalStores < 1 {
		totalStores = 1
	}

	var lines []string
	for _, r := range takeN(results, promptProductLimit) {
		lines = append(lines, fmt.Sprintf("• %s - ₪%s (%s)", r.Title, formatAmount(r.Price), r.StoreName))
	}

	return fmt.Sprintf(`אתה עוזר מכירות מקצועי בחנות אלקטרוניקה ישראלית מתקדמת.

שאלת הלקוח: "%s"

מוצרים זמינים (%d):
%s

חנויות מחוברות: %d

תענה בעברית בצורה ידידותית ומקצועית:
1. הסבר מה מצאת ממספר החנויות
2. המלץ על המוצרים הטובים ביותר עם יתרונות
3. תן טיפים לבחירה חכמה והשוואת מחירים
4. עודד לרכישה עם דגש על שירות והבדלי מחיר

תשובה מקצועית ומועילה (עד 200 מילים) המדגישה את היתרון של החיפוש הרב-חנותי.`,
		query, len(results), strings.Join(lines, "\n"), totalStores)
}

// BuildFlightPrompt builds the Hebrew flight-advisor prompt
func BuildFlightPrompt(query string, flights []domain.FlightOffer, params domain.FlightSearchParams) string {
	origin := params.Origin
	if origin == "" {
		origin = "TLV"
	}
	passengers := params.Passengers
	if passengers < 1 {
		passengers = 1
	}
	class := params.Class
	if class == "" {
		class = "Economy"
	}

	var lines []string
	for _, f := range takeN(flights, promptProductLimit) {
		lines = append(lines, fmt.Sprintf("• %s %s – %s→%s – %s",
			f.Airline, f.FlightNumber, f.Origin.Code, f.Destination.Code, f.Price.Formatted))
	}

	return fmt.Sprintf("אתה יועץ טיסות מומחה בעברית. קיבלנו בקשת חיפוש: \"%s\"\n\n"+
		"הקשר: מוצא: %s, יעד: %s, תאריך יציאה: %s, נוסעים: %d, מחלקה: %s.\n\n"+
		"נמצאו %d טיסות. דוגמאות:\n%s\n\n"+
		"החזר תשובה קצרה, ממוקדת ומועילה בעברית: 1) מסקנה כללית 2) 2-3 המלצות פרקטיות (טיסה ישירה/עצירה, חברת תעופה, מחיר) 3) הצעה לשינוי תאריך/יעד אם אין תוצאות.",
		query, origin, params.Destination, params.DepartureDate, passengers, class,
		len(flights), strings.Join(lines, "\n"))
}

// DemoProductResponse is the canned assistant reply used when no AI provider answers.
// The reply is chosen by keywords in the query.
func DemoProductResponse(query string, results []domain.SearchResult, totalStores int) string {
	count := len(results)
	if totalStores < 1 {
		totalStores = 1
	}
	q := strings.ToLower(query)

	switch {
	case containsAny(q, "לפטופ", "laptop"):
		lo, hi := priceBounds(results)
		return fmt.Sprintf("מצאתי עבורך %d אפשרויות מעניינות ללפטופ! המחיר נע בין ₪%s ל-₪%s. המלצתי: בדוק את האפשרות הזולה ביותר תחילה - לפעמים זה בדיוק מה שאתה צריך!",
			count, formatAmount(lo), formatAmount(hi))
	case containsAny(q, "טלפון", "phone", "סמארטפון"):
		return fmt.Sprintf("יש לנו %d סמארטפונים זמינים! המחירים משתנים בהתאם לדגם והתכונות. המלצתי: תבדוק את המפרט הטכני של כל דגם כדי לוודא שהוא מתאים לצרכים שלך.", count)
	case containsAny(q, "ילד", "children", "בייבי"):
		return fmt.Sprintf("מוצרי ילדים? מצאתי %d פריטים מ-%d חנויות שונות. חשוב לבדוק גיל מומלץ ותקני בטיחות. המחירים נראים הוגנים!", count, totalStores)
	case containsAny(q, "גיימינג", "gaming", "אוזני"):
		return fmt.Sprintf("לגיימרים יש לנו %d מוצרים מעולים! בין אם זה לפטופ גיימינג או אוזניות, המלצתי לבדוק ביקורות של משתמשים. המחיר הממוצע נראה תחרותי.", count)
	default:
		return fmt.Sprintf("מצאתי עבורך %d מוצרים מ-%d חנויות! יש לי כמה המלצות: 1️⃣ השווה מחירים 2️⃣ בדוק ביקורות 3️⃣ שים לב לעלויות משלוח. בהצלחה!", count, totalStores)
	}
}

// DemoFlightResponse is the canned flight summary used when no AI provider answers
func DemoFlightResponse(flights []domain.FlightOffer, params domain.FlightSearchParams) string {
	if len(flights) == 0 {
		return "לא נמצאו טיסות זמינות. נסו יעד/תאריכים אחרים או מחלקה אחרת."
	}

	lo, hi := flights[0].Price.Amount, flights[0].Price.Amount
	for _, f := range flights[1:] {
		lo = min(lo, f.Price.Amount)
		hi = max(hi, f.Price.Amount)
	}
	return fmt.Sprintf("מצאתי %d טיסות ליעד שביקשתם בתאריך %s. טווח המחירים נע בין ₪%s ל-₪%s. מומלץ לשקול טיסה ישירה אם חשוב קיצור זמן, או עם עצירה אם המחיר חשוב יותר.",
		len(flights), params.DepartureDate, formatAmount(lo), formatAmount(hi))
}

func priceBounds(results []domain.SearchResult) (float64, float64) {
	if len(results) == 0 {
		return 0, 0
	}
	lo, hi := results[0].Price, results[0].Price
	for _, r := range results[1:] {
		lo = min(lo, r.Price)
		hi = max(hi, r.Price)
	}
	return lo, hi
}

// formatAmount prints a price without trailing zeros
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
