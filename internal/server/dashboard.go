package server

// dashboardHTML is the single-page live dashboard: camera feed on the left,
// detection status cards on the right, polling /status every 500ms.
const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Sightline Dashboard</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: 'Segoe UI', Arial, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 20px;
        }
        .container { max-width: 1400px; margin: 0 auto; }
        h1 {
            text-align: center;
            font-size: 2.5em;
            margin-bottom: 10px;
            text-shadow: 2px 2px 4px rgba(0,0,0,0.3);
        }
        .subtitle {
            text-align: center;
            font-size: 1.1em;
            margin-bottom: 30px;
            opacity: 0.9;
        }
        .grid {
            display: grid;
            grid-template-columns: 2fr 1fr;
            gap: 20px;
            margin-bottom: 20px;
        }
        .card {
            background: rgba(255,255,255,0.15);
            backdrop-filter: blur(10px);
            border-radius: 15px;
            padding: 20px;
            box-shadow: 0 8px 32px rgba(0,0,0,0.2);
            border: 1px solid rgba(255,255,255,0.2);
        }
        .card h2 {
            margin-bottom: 15px;
            font-size: 1.5em;
            border-bottom: 2px solid rgba(255,255,255,0.3);
            padding-bottom: 10px;
        }
        #video {
            width: 100%;
            border-radius: 10px;
            box-shadow: 0 4px 15px rgba(0,0,0,0.3);
        }
        .status-item {
            background: rgba(255,255,255,0.1);
            padding: 15px;
            border-radius: 10px;
            margin-bottom: 15px;
            border-left: 4px solid #4CAF50;
        }
        .status-item h3 {
            font-size: 0.9em;
            opacity: 0.8;
            margin-bottom: 8px;
            text-transform: uppercase;
            letter-spacing: 1px;
        }
        .status-item p {
            font-size: 1.3em;
            font-weight: bold;
            word-wrap: break-word;
        }
        .audio-output {
            border-left-color: #ff6b6b !important;
            background: rgba(255,107,107,0.2);
        }
        .text-output { border-left-color: #4ecdc4 !important; }
        .object-output { border-left-color: #ffd93d !important; }
        @keyframes pulse {
            0%, 100% { opacity: 1; }
            50% { opacity: 0.7; }
        }
        .live-indicator {
            display: inline-block;
            width: 12px;
            height: 12px;
            background: #ff6b6b;
            border-radius: 50%;
            margin-right: 8px;
            animation: pulse 2s infinite;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Real-Time Vision + Audio System</h1>
        <p class="subtitle">
            <span class="live-indicator"></span>
            Scene Description + OCR Text Recognition
        </p>

        <div class="grid">
            <div class="card">
                <h2>Live Camera Feed</h2>
                <img id="video" src="/video_feed" alt="Camera Feed">
            </div>

            <div class="card">
                <h2>Detection Status</h2>

                <div class="status-item audio-output">
                    <h3>Currently Speaking</h3>
                    <p id="audio-output">Loading...</p>
                </div>

                <div class="status-item text-output">
                    <h3>Text Detected (OCR)</h3>
                    <p id="text-output">Loading...</p>
                </div>

                <div class="status-item object-output">
                    <h3>Objects Detected</h3>
                    <p id="object-output">Loading...</p>
                </div>
            </div>
        </div>

        <div class="card">
            <h2>System Information</h2>
            <p style="line-height: 1.8; opacity: 0.9;">
                <strong>Priority Logic:</strong> If text is visible &rarr; speak TEXT, else &rarr; speak OBJECTS<br>
                <strong>Detection Speed:</strong> Real-time (500ms interval)<br>
                <strong>Audio Engine:</strong> Piper TTS<br>
                <strong>Models:</strong> Tesseract (Text) + Vision-Language Captioning
            </p>
        </div>
    </div>

    <script>
        setInterval(function() {
            fetch('/status')
                .then(response => response.json())
                .then(data => {
                    document.getElementById('audio-output').textContent = data.audio || 'N/A';
                    document.getElementById('text-output').textContent = data.text || 'No text detected';
                    document.getElementById('object-output').textContent = data.objects || 'No objects detected';
                })
                .catch(err => console.error('Status update error:', err));
        }, 500);
    </script>
</body>
</html>
`
