package vision

// PlantPrompt asks for a single JSON object describing the plant in the
// image. Watering days are Spanish weekday names.
const PlantPrompt = `Analiza esta imagen de planta y proporciona una respuesta detallada en formato JSON con la siguiente estructura:
{
  "name": "Nombre común de la planta",
  "description": "Breve descripción de las características y apariencia de la planta",
  "difficult": "easy/medium/hard - basado en qué tan desafiante es mantenerla",
  "water": ["lunes", "miércoles", "viernes"] - array de días de la semana en español para el riego recomendado,
  "temperature": number - rango de temperatura óptima en Celsius,
  "humidity": number - porcentaje de humedad requerido,
  "light": "low/medium/high - requisitos de luz"
}

Por favor asegúrate de que todos los valores coincidan exactamente con el formato especificado y los enums. La respuesta debe ser JSON válido.
Devuelve solo JSON válido sin comentarios o explicaciones adicionales.`
